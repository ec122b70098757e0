package department

import (
	"fmt"
	"slices"

	"github.com/frahmantamala/orgtree/internal"
)

// TreeNode is a department with its children, ready for display.
type TreeNode struct {
	ID            int64       `json:"id"`
	ParentID      *int64      `json:"parent_id,omitempty"`
	Label         string      `json:"label"`
	EmployeeCount int64       `json:"employee_count"`
	Children      []*TreeNode `json:"children"`
}

func (n *TreeNode) HasChildren() bool {
	return len(n.Children) > 0
}

// LabelFunc renders the display label of one department.
type LabelFunc func(Row) string

func DefaultLabel(r Row) string {
	return fmt.Sprintf("Department #%d [%d employees]", r.ID, r.EmployeeCount)
}

// Assemble turns flat parent-pointer rows into a forest. Roots and every
// child list are ordered by ascending id whatever the input order. A parent
// id missing from rows, a row that is its own parent, or a group of rows that
// never reaches a root is reported as an error naming the offending id.
func Assemble(rows []Row, label LabelFunc) ([]*TreeNode, error) {
	if label == nil {
		label = DefaultLabel
	}

	nodes := make(map[int64]*TreeNode, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if _, dup := nodes[r.ID]; dup {
			return nil, internal.NewInvariantViolationError(
				fmt.Sprintf("department %d appears more than once", r.ID),
				internal.ErrCodeDuplicateID,
			)
		}
		if r.ParentID != nil && *r.ParentID == r.ID {
			return nil, internal.NewSelfParentError(r.ID)
		}
		nodes[r.ID] = &TreeNode{
			ID:            r.ID,
			ParentID:      r.ParentID,
			Label:         label(r),
			EmployeeCount: r.EmployeeCount,
			Children:      []*TreeNode{},
		}
		ids = append(ids, r.ID)
	}
	slices.Sort(ids)

	// Linking in ascending id order leaves every child list sorted.
	roots := []*TreeNode{}
	for _, id := range ids {
		node := nodes[id]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			return nil, internal.NewDanglingReferenceError(id, *node.ParentID)
		}
		parent.Children = append(parent.Children, node)
	}

	reached := make(map[int64]struct{}, len(nodes))
	Walk(roots, func(n *TreeNode, _ int) {
		reached[n.ID] = struct{}{}
	})
	if len(reached) != len(nodes) {
		for _, id := range ids {
			if _, ok := reached[id]; !ok {
				return nil, internal.NewCycleError(id, *nodes[id].ParentID)
			}
		}
	}

	return roots, nil
}

// Walk visits the forest depth-first in display order. depth is 1 for roots.
func Walk(forest []*TreeNode, visit func(node *TreeNode, depth int)) {
	type frame struct {
		node  *TreeNode
		depth int
	}
	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{forest[i], 1})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(top.node, top.depth)
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Children[i], top.depth + 1})
		}
	}
}
