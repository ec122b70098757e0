package department_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/frahmantamala/orgtree/internal/department"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDepartment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Suite")
}

func ptr(v int64) *int64 {
	return &v
}

// MockRepository implements department.RepositoryAPI in memory. Ids are
// handed out in insertion order like a database sequence.
type MockRepository struct {
	parents     map[int64]*int64
	employees   map[int64]int64
	nextID      int64
	bulkCalls   int
	listCalls   int
	deleted     []int64
	shouldFail  bool
	failError   error
	dropOnWrite bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		parents:   make(map[int64]*int64),
		employees: make(map[int64]int64),
	}
}

func (m *MockRepository) Count(_ context.Context) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return int64(len(m.parents)), nil
}

func (m *MockRepository) ListOrdered(_ context.Context, limit int) ([]department.Node, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.listCalls++
	ids := make([]int64, 0, len(m.parents))
	for id := range m.parents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	nodes := make([]department.Node, len(ids))
	for i, id := range ids {
		nodes[i] = department.Node{ID: id, ParentID: m.parents[id]}
	}
	return nodes, nil
}

func (m *MockRepository) BulkCreate(_ context.Context, parentIDs []*int64, _ int) error {
	if m.shouldFail {
		return m.failError
	}
	m.bulkCalls++
	for i, p := range parentIDs {
		if m.dropOnWrite && i == len(parentIDs)-1 && m.bulkCalls > 1 {
			continue
		}
		m.nextID++
		m.parents[m.nextID] = p
	}
	return nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*department.Node, error) {
	p, ok := m.parents[id]
	if !ok {
		return nil, nil
	}
	return &department.Node{ID: id, ParentID: p}, nil
}

func (m *MockRepository) UpdateParent(_ context.Context, id int64, parentID *int64) error {
	if m.shouldFail {
		return m.failError
	}
	m.parents[id] = parentID
	return nil
}

func (m *MockRepository) DeleteSubtree(_ context.Context, ids []int64) (int64, error) {
	var removed int64
	for _, id := range ids {
		delete(m.parents, id)
		removed += m.employees[id]
		m.deleted = append(m.deleted, id)
	}
	return removed, nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

// seed stores departments with explicit ids.
func (m *MockRepository) seed(nodes ...department.Node) {
	for _, n := range nodes {
		m.parents[n.ID] = n.ParentID
		if n.ID > m.nextID {
			m.nextID = n.ID
		}
	}
}

var errDatabase = errors.New("database error")
