package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/golang-jwt/jwt/v5"
)

// OperatorSubject is the subject of every token; there is a single operator.
const OperatorSubject = "operator"

// Claims represents JWT token claims
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and checks bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(operator string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
		now:    time.Now,
	}
}

// GenerateAccessToken signs an HS256 token for operator.
func (j *JWTTokenGenerator) GenerateAccessToken(operator string) (string, time.Time, error) {
	if len(j.Secret) == 0 {
		return "", time.Time{}, internal.NewConfigurationError("security.token_secret is not configured", internal.ErrCodeInvalidConfig)
	}

	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.TTL)
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   OperatorSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithSubject(OperatorSubject), jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrInvalidToken
}
