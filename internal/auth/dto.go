package auth

import (
	"time"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoginDTO is the body of POST /api/v1/auth/token.
type LoginDTO struct {
	Operator string `json:"operator" validate:"omitempty,max=64"`
	Password string `json:"password" validate:"required"`
}

func (d LoginDTO) Validate() error {
	if err := validate.Struct(d); err != nil {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
