package auth

import (
	"log/slog"

	"github.com/frahmantamala/orgtree/internal"
	"golang.org/x/crypto/bcrypt"
)

// Service checks the operator password and issues tokens.
type Service struct {
	passwordHash   []byte
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(passwordHash string, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		passwordHash:   []byte(passwordHash),
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// IssueToken validates the operator password and returns a bearer token.
func (s *Service) IssueToken(dto LoginDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}
	if len(s.passwordHash) == 0 {
		s.logger.Warn("token requested but no operator password hash is configured")
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(dto.Password)); err != nil {
		s.logger.Warn("operator authentication failed", "operator", dto.Operator)
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	return s.Mint(dto.Operator)
}

// Mint issues a token without a password check, for the token command.
func (s *Service) Mint(operator string) (TokenResponse, error) {
	if operator == "" {
		operator = OperatorSubject
	}
	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(operator)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("issued operator token", "operator", operator, "expires_at", expiresAt)
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
