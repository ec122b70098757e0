package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/orgtree/internal/employee"
	"github.com/frahmantamala/orgtree/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee Handler", func() {
	var handler *employee.Handler

	request := func(id, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/departments/"+id+"/employees"+query, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		handler.ListByDepartment(w, req)
		return w
	}

	BeforeEach(func() {
		mockRepo := NewMockRepository()
		mockRepo.departments[12] = true
		_, err := populate(mockRepo, 12, 5, 42)
		Expect(err).NotTo(HaveOccurred())

		handler = employee.NewHandler(&transport.BaseHandler{Logger: testLogger}, employee.NewService(mockRepo, testLogger))
	})

	It("should list employees with paging parameters", func() {
		w := request("12", "?limit=2&offset=0")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp employee.EmployeesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Total).To(Equal(int64(3)))
		Expect(resp.Employees).To(HaveLen(2))
		for _, e := range resp.Employees {
			Expect(e.DepartmentID).To(Equal(int64(12)))
		}
	})

	It("should fall back to defaults for malformed paging", func() {
		w := request("12", "?limit=abc")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp employee.EmployeesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Limit).To(Equal(employee.DefaultPageSize))
	})

	It("should answer 404 for an unknown department", func() {
		Expect(request("99", "").Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for a malformed id", func() {
		Expect(request("x", "").Code).To(Equal(http.StatusBadRequest))
	})
})
