package middleware

import (
	"net/http"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/auth"
	"github.com/frahmantamala/orgtree/internal/transport"
	"github.com/frahmantamala/orgtree/pkg/logger"
)

type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// RequireOperator rejects requests without a valid bearer token and puts the
// operator name into the request context and logger.
func RequireOperator(base *transport.BaseHandler, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := base.ExtractTokenFromHeader(r)
			if token == "" {
				base.WriteAppError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				base.WriteAppError(w, err)
				return
			}

			ctx := internal.ContextWithOperator(r.Context(), claims.Operator)
			ctx = logger.With(ctx, "operator", claims.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
