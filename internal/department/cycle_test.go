package department_test

import (
	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/department"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ValidateParent", func() {
	// 1 <- 2 <- 3, and 4 is a separate root.
	index := department.NewParentIndex([]department.Node{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(2)},
		{ID: 4},
	})

	It("should accept a nil parent", func() {
		Expect(department.ValidateParent(ptr(3), nil, index.Lookup)).To(Succeed())
	})

	It("should accept any existing parent for an unsaved department", func() {
		Expect(department.ValidateParent(nil, ptr(3), index.Lookup)).To(Succeed())
	})

	It("should accept a move into another branch", func() {
		Expect(department.ValidateParent(ptr(3), ptr(4), index.Lookup)).To(Succeed())
	})

	It("should accept moving a department under a sibling branch ancestor", func() {
		Expect(department.ValidateParent(ptr(4), ptr(3), index.Lookup)).To(Succeed())
	})

	It("should reject a department as its own parent", func() {
		err := department.ValidateParent(ptr(2), ptr(2), index.Lookup)
		Expect(internal.HasCode(err, internal.ErrCodeSelfParent)).To(BeTrue())
	})

	It("should reject a move under a descendant", func() {
		err := department.ValidateParent(ptr(1), ptr(3), index.Lookup)
		Expect(internal.HasCode(err, internal.ErrCodeCycleDetected)).To(BeTrue())
	})

	It("should reject a parent that does not exist", func() {
		err := department.ValidateParent(ptr(3), ptr(42), index.Lookup)
		Expect(internal.HasCode(err, internal.ErrCodeDanglingReference)).To(BeTrue())
	})

	It("should stop on a corrupt chain that loops above the department", func() {
		corrupt := department.ParentIndex{5: ptr(6), 6: ptr(5), 7: nil}
		err := department.ValidateParent(ptr(7), ptr(5), corrupt.Lookup)
		Expect(internal.HasCode(err, internal.ErrCodeCycleDetected)).To(BeTrue())
	})
})

var _ = Describe("ParentIndex", func() {
	It("should list a department and everything below it", func() {
		index := department.NewParentIndex([]department.Node{
			{ID: 1},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3, ParentID: ptr(1)},
			{ID: 4, ParentID: ptr(2)},
			{ID: 5},
		})
		Expect(index.Descendants(2)).To(ConsistOf(int64(2), int64(4)))
		Expect(index.Descendants(1)).To(ConsistOf(int64(1), int64(2), int64(3), int64(4)))
		Expect(index.Descendants(1)[0]).To(Equal(int64(1)))
		Expect(index.Descendants(5)).To(Equal([]int64{5}))
	})
})
