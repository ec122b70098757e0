package department

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/transport"
)

type ServiceAPI interface {
	GetTree(ctx context.Context) ([]*TreeNode, error)
	ChangeParent(ctx context.Context, id int64, parentID *int64) (*Node, error)
	DeleteDepartment(ctx context.Context, id int64) (DeleteResult, error)
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

func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.Service.GetTree(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, TreeResponse{Departments: forest})
}

func (h *Handler) ChangeParent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathInt64(w, r, "id")
	if !ok {
		return
	}

	var req ChangeParentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	node, err := h.Service.ChangeParent(r.Context(), id, req.ParentID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, node)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathInt64(w, r, "id")
	if !ok {
		return
	}

	result, err := h.Service.DeleteDepartment(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
