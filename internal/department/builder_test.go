package department_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/department"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TreeBuilder", func() {
	var (
		ctx      context.Context
		mockRepo *MockRepository
		builder  *department.TreeBuilder
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		builder = department.NewTreeBuilder(mockRepo, logger)
	})

	Describe("EnsureTree", func() {
		Context("when the table is empty", func() {
			It("should build 25 departments over 5 levels with round-robin parents", func() {
				nodes, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())
				Expect(nodes).To(HaveLen(25))
				Expect(mockRepo.bulkCalls).To(Equal(5))

				levels := [][]department.Node{nodes[0:1], nodes[1:4], nodes[4:9], nodes[9:16], nodes[16:25]}
				Expect(levels[0][0].IsRoot()).To(BeTrue())

				for l := 1; l < len(levels); l++ {
					prev := levels[l-1]
					for i, n := range levels[l] {
						Expect(n.ParentID).NotTo(BeNil())
						Expect(*n.ParentID).To(Equal(prev[i%len(prev)].ID))
					}
				}
			})

			It("should have exactly one root", func() {
				nodes, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())

				roots := 0
				for _, n := range nodes {
					if n.IsRoot() {
						roots++
					}
				}
				Expect(roots).To(Equal(1))
			})

			It("should produce a tree the assembler accepts with depth 5", func() {
				nodes, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())

				rows := make([]department.Row, len(nodes))
				for i, n := range nodes {
					rows[i] = department.Row{ID: n.ID, ParentID: n.ParentID}
				}
				forest, err := department.Assemble(rows, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(forest).To(HaveLen(1))

				perLevel := map[int]int{}
				department.Walk(forest, func(_ *department.TreeNode, depth int) {
					perLevel[depth]++
				})
				Expect(perLevel).To(Equal(map[int]int{1: 1, 2: 3, 3: 5, 4: 7, 5: 9}))
			})
		})

		Context("when called twice", func() {
			It("should reuse the existing tree without creating anything", func() {
				first, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())
				calls := mockRepo.bulkCalls

				second, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(Equal(first))
				Expect(mockRepo.bulkCalls).To(Equal(calls))
			})
		})

		Context("when more departments than the target exist", func() {
			It("should return the first target rows by id", func() {
				for i := int64(1); i <= 30; i++ {
					mockRepo.seed(department.Node{ID: i})
				}
				nodes, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).NotTo(HaveOccurred())
				Expect(nodes).To(HaveLen(25))
				Expect(nodes[24].ID).To(Equal(int64(25)))
			})
		})

		Context("when a partial tree exists", func() {
			It("should fail with a state conflict carrying the existing count", func() {
				mockRepo.seed(department.Node{ID: 1}, department.Node{ID: 2, ParentID: ptr(1)})

				_, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(internal.HasCode(err, internal.ErrCodePartialTree)).To(BeTrue())

				appErr, _ := internal.IsAppError(err)
				Expect(appErr.Details).To(Equal(internal.RecordCounts{Departments: 2}))
				Expect(mockRepo.bulkCalls).To(Equal(0))
			})
		})

		Context("when the store loses rows", func() {
			It("should report an invariant violation", func() {
				mockRepo.dropOnWrite = true
				_, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(internal.HasType(err, internal.ErrorTypeInvariant)).To(BeTrue())
			})
		})

		Context("when the shape is invalid", func() {
			It("should reject more than one root", func() {
				_, err := builder.EnsureTree(ctx, department.Shape{LevelCounts: []int{2, 3}}, 100)
				Expect(internal.HasType(err, internal.ErrorTypeConfiguration)).To(BeTrue())
			})

			It("should reject an empty level", func() {
				_, err := builder.EnsureTree(ctx, department.Shape{LevelCounts: []int{1, 0}}, 100)
				Expect(internal.HasType(err, internal.ErrorTypeConfiguration)).To(BeTrue())
			})
		})

		Context("when the store fails", func() {
			It("should return the store error", func() {
				mockRepo.SetShouldFail(true, errDatabase)
				_, err := builder.EnsureTree(ctx, department.DefaultShape, 100)
				Expect(err).To(MatchError(errDatabase))
			})
		})
	})

	Describe("Shape", func() {
		It("should total the default shape to 25 over 5 levels", func() {
			Expect(department.DefaultShape.Total()).To(Equal(25))
			Expect(department.DefaultShape.Levels()).To(Equal(5))
		})
	})
})
