package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/orgtree/internal/transport"
)

type ServiceAPI interface {
	ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) (*EmployeesResponse, error)
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

func (h *Handler) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathInt64(w, r, "id")
	if !ok {
		return
	}

	limit := h.QueryInt(r, "limit", DefaultPageSize)
	offset := h.QueryInt(r, "offset", 0)

	resp, err := h.Service.ListByDepartment(r.Context(), id, limit, offset)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
