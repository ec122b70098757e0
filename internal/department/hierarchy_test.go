package department_test

import (
	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/department"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func childIDs(n *department.TreeNode) []int64 {
	out := make([]int64, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.ID
	}
	return out
}

var _ = Describe("Assemble", func() {
	It("should build a single tree from parent pointers", func() {
		rows := []department.Row{
			{ID: 1},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3, ParentID: ptr(1)},
			{ID: 4, ParentID: ptr(2)},
		}

		forest, err := department.Assemble(rows, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(forest).To(HaveLen(1))
		root := forest[0]
		Expect(root.ID).To(Equal(int64(1)))
		Expect(childIDs(root)).To(Equal([]int64{2, 3}))
		Expect(childIDs(root.Children[0])).To(Equal([]int64{4}))
		Expect(root.Children[1].HasChildren()).To(BeFalse())
	})

	It("should not depend on input order", func() {
		rows := []department.Row{
			{ID: 4, ParentID: ptr(2)},
			{ID: 3, ParentID: ptr(1)},
			{ID: 2, ParentID: ptr(1)},
			{ID: 1},
		}

		forest, err := department.Assemble(rows, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(forest).To(HaveLen(1))
		Expect(childIDs(forest[0])).To(Equal([]int64{2, 3}))
	})

	It("should order several roots by id", func() {
		forest, err := department.Assemble([]department.Row{{ID: 7}, {ID: 3}, {ID: 5, ParentID: ptr(7)}}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(forest).To(HaveLen(2))
		Expect(forest[0].ID).To(Equal(int64(3)))
		Expect(forest[1].ID).To(Equal(int64(7)))
	})

	It("should return an empty forest for no rows", func() {
		forest, err := department.Assemble(nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(forest).To(BeEmpty())
	})

	It("should label nodes with id and employee count", func() {
		forest, err := department.Assemble([]department.Row{{ID: 1, EmployeeCount: 2400}}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(forest[0].Label).To(Equal("Department #1 [2400 employees]"))
		Expect(forest[0].EmployeeCount).To(Equal(int64(2400)))
	})

	It("should use a custom label", func() {
		forest, err := department.Assemble([]department.Row{{ID: 1}}, func(department.Row) string { return "HQ" })
		Expect(err).NotTo(HaveOccurred())
		Expect(forest[0].Label).To(Equal("HQ"))
	})

	It("should report a missing parent", func() {
		_, err := department.Assemble([]department.Row{{ID: 1}, {ID: 2, ParentID: ptr(99)}}, nil)
		Expect(internal.HasCode(err, internal.ErrCodeDanglingReference)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("99"))

		appErr, _ := internal.IsAppError(err)
		details := appErr.Details.(internal.ReferenceDetails)
		Expect(details.ID).To(Equal(int64(2)))
		Expect(*details.ParentID).To(Equal(int64(99)))
	})

	It("should report a self parent", func() {
		_, err := department.Assemble([]department.Row{{ID: 1, ParentID: ptr(1)}}, nil)
		Expect(internal.HasCode(err, internal.ErrCodeSelfParent)).To(BeTrue())
	})

	It("should report a cycle that never reaches a root", func() {
		rows := []department.Row{
			{ID: 1},
			{ID: 2, ParentID: ptr(3)},
			{ID: 3, ParentID: ptr(2)},
		}
		_, err := department.Assemble(rows, nil)
		Expect(internal.HasCode(err, internal.ErrCodeCycleDetected)).To(BeTrue())
	})

	It("should report duplicate ids", func() {
		_, err := department.Assemble([]department.Row{{ID: 1}, {ID: 1}}, nil)
		Expect(internal.HasCode(err, internal.ErrCodeDuplicateID)).To(BeTrue())
	})
})

var _ = Describe("Walk", func() {
	It("should visit nodes depth-first in display order", func() {
		rows := []department.Row{
			{ID: 1},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3, ParentID: ptr(1)},
			{ID: 4, ParentID: ptr(2)},
		}
		forest, err := department.Assemble(rows, nil)
		Expect(err).NotTo(HaveOccurred())

		var visited []int64
		var depths []int
		department.Walk(forest, func(n *department.TreeNode, depth int) {
			visited = append(visited, n.ID)
			depths = append(depths, depth)
		})
		Expect(visited).To(Equal([]int64{1, 2, 4, 3}))
		Expect(depths).To(Equal([]int{1, 2, 3, 2}))
	})
})
