package department_test

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/core/events"
	"github.com/frahmantamala/orgtree/internal/department"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockTreeReader struct {
	rows []department.Row
	err  error
}

func (m *MockTreeReader) ListRows(_ context.Context) ([]department.Row, error) {
	return m.rows, m.err
}

type MockPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *MockPublisher) Publish(_ context.Context, event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.EventType()
	}
	return out
}

var _ = Describe("Department Service", func() {
	var (
		ctx       context.Context
		mockRepo  *MockRepository
		reader    *MockTreeReader
		publisher *MockPublisher
		service   *department.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = NewMockRepository()
		reader = &MockTreeReader{}
		publisher = &MockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = department.NewService(mockRepo, reader, publisher, logger)

		mockRepo.seed(
			department.Node{ID: 1},
			department.Node{ID: 2, ParentID: ptr(1)},
			department.Node{ID: 3, ParentID: ptr(1)},
			department.Node{ID: 4, ParentID: ptr(2)},
		)
	})

	Describe("GetTree", func() {
		It("should assemble the rows from the reader", func() {
			reader.rows = []department.Row{
				{ID: 1, EmployeeCount: 5},
				{ID: 2, ParentID: ptr(1), EmployeeCount: 3},
			}
			forest, err := service.GetTree(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(forest).To(HaveLen(1))
			Expect(forest[0].Children).To(HaveLen(1))
			Expect(forest[0].Children[0].Label).To(Equal("Department #2 [3 employees]"))
		})

		It("should surface structural errors", func() {
			reader.rows = []department.Row{{ID: 1}, {ID: 2, ParentID: ptr(99)}}
			_, err := service.GetTree(ctx)
			Expect(internal.HasCode(err, internal.ErrCodeDanglingReference)).To(BeTrue())
		})

		It("should return reader errors", func() {
			reader.err = errDatabase
			_, err := service.GetTree(ctx)
			Expect(err).To(MatchError(errDatabase))
		})
	})

	Describe("ChangeParent", func() {
		It("should move a department into another branch", func() {
			node, err := service.ChangeParent(ctx, 4, ptr(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(*node.ParentID).To(Equal(int64(3)))
			Expect(*mockRepo.parents[4]).To(Equal(int64(3)))
			Eventually(publisher.types).Should(ContainElement(events.EventTypeDepartmentReparent))
		})

		It("should make a department a root", func() {
			node, err := service.ChangeParent(ctx, 2, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(node.IsRoot()).To(BeTrue())
			Expect(mockRepo.parents[2]).To(BeNil())
		})

		It("should reject a move under its own descendant", func() {
			_, err := service.ChangeParent(ctx, 1, ptr(4))
			Expect(internal.HasCode(err, internal.ErrCodeCycleDetected)).To(BeTrue())
			Expect(mockRepo.parents[1]).To(BeNil())
			Expect(publisher.types()).To(BeEmpty())
		})

		It("should reject a self parent", func() {
			_, err := service.ChangeParent(ctx, 2, ptr(2))
			Expect(internal.HasCode(err, internal.ErrCodeSelfParent)).To(BeTrue())
		})

		It("should reject a missing parent", func() {
			_, err := service.ChangeParent(ctx, 2, ptr(77))
			Expect(internal.HasCode(err, internal.ErrCodeDanglingReference)).To(BeTrue())
		})

		It("should return not found for a missing department", func() {
			_, err := service.ChangeParent(ctx, 77, ptr(1))
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
		})
	})

	Describe("DeleteDepartment", func() {
		It("should remove the department and its subtree", func() {
			mockRepo.employees[2] = 10
			mockRepo.employees[4] = 5

			result, err := service.DeleteDepartment(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(department.DeleteResult{Departments: 2, Employees: 15}))
			Expect(mockRepo.deleted).To(ConsistOf(int64(2), int64(4)))
			Expect(mockRepo.parents).To(HaveLen(2))
			Eventually(publisher.types).Should(ContainElement(events.EventTypeDepartmentDeleted))
		})

		It("should return not found for a missing department", func() {
			_, err := service.DeleteDepartment(ctx, 77)
			Expect(err).To(Equal(internal.ErrDepartmentNotFound))
			Expect(mockRepo.deleted).To(BeEmpty())
		})
	})
})
