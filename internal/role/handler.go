package role

import (
	"context"
	"net/http"

	"github.com/frahmantamala/orgtree/internal/transport"
)

type ServiceAPI interface {
	GetAllRoles(ctx context.Context) ([]RoleResponse, error)
	DeleteRole(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.GetAllRoles(r.Context())
	if err != nil {
		h.Logger.Error("GetRoles: failed to get roles", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RolesResponse{Roles: roles})
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathInt64(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteRole(r.Context(), id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
