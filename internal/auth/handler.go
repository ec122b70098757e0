package auth

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/transport"
)

type ServiceAPI interface {
	IssueToken(dto LoginDTO) (TokenResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	tokens, err := h.Service.IssueToken(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}
