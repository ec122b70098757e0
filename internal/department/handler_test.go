package department_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/frahmantamala/orgtree/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(w *httptest.ResponseRecorder) (string, string) {
	var body struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
	return body.Error.Type, body.Error.Code
}

var _ = Describe("Department Handler", func() {
	var (
		mockRepo *MockRepository
		reader   *MockTreeReader
		handler  *department.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = NewMockRepository()
		reader = &MockTreeReader{}
		service := department.NewService(mockRepo, reader, nil, slogger)
		handler = department.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		mockRepo.seed(
			department.Node{ID: 1},
			department.Node{ID: 2, ParentID: ptr(1)},
			department.Node{ID: 3, ParentID: ptr(2)},
		)
	})

	It("should render the tree as JSON", func() {
		reader.rows = []department.Row{{ID: 1, EmployeeCount: 2}, {ID: 2, ParentID: ptr(1)}}

		w := httptest.NewRecorder()
		handler.GetTree(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments/tree", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response department.TreeResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Departments).To(HaveLen(1))
		Expect(response.Departments[0].EmployeeCount).To(Equal(int64(2)))
		Expect(response.Departments[0].Children[0].ID).To(Equal(int64(2)))
	})

	It("should answer 422 when stored rows are inconsistent", func() {
		reader.rows = []department.Row{{ID: 2, ParentID: ptr(9)}}

		w := httptest.NewRecorder()
		handler.GetTree(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments/tree", nil))

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		_, code := decodeError(w)
		Expect(code).To(Equal("DANGLING_REFERENCE"))
	})

	It("should move a department", func() {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/3/parent", strings.NewReader(`{"parent_id": 1}`))
		w := httptest.NewRecorder()
		handler.ChangeParent(w, withURLParam(req, "id", "3"))

		Expect(w.Code).To(Equal(http.StatusOK))
		var node department.Node
		Expect(json.NewDecoder(w.Body).Decode(&node)).To(Succeed())
		Expect(*node.ParentID).To(Equal(int64(1)))
	})

	It("should reject a cyclic move with 422", func() {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/1/parent", strings.NewReader(`{"parent_id": 3}`))
		w := httptest.NewRecorder()
		handler.ChangeParent(w, withURLParam(req, "id", "1"))

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		errType, code := decodeError(w)
		Expect(errType).To(Equal("STRUCTURE_ERROR"))
		Expect(code).To(Equal("CYCLE_DETECTED"))
	})

	It("should reject a malformed id", func() {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/abc/parent", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.ChangeParent(w, withURLParam(req, "id", "abc"))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a malformed body", func() {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/departments/3/parent", strings.NewReader(`{`))
		w := httptest.NewRecorder()
		handler.ChangeParent(w, withURLParam(req, "id", "3"))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should delete a subtree", func() {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/departments/2", nil)
		w := httptest.NewRecorder()
		handler.DeleteDepartment(w, withURLParam(req, "id", "2"))

		Expect(w.Code).To(Equal(http.StatusOK))
		var result department.DeleteResult
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Departments).To(Equal(2))
	})

	It("should answer 404 for a missing department", func() {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/departments/42", nil)
		w := httptest.NewRecorder()
		handler.DeleteDepartment(w, withURLParam(req, "id", "42"))

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
