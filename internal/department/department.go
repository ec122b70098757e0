package department

import (
	"fmt"

	"github.com/frahmantamala/orgtree/internal"
	departmentDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/department"
)

// Node is a department identity with its parent link.
type Node struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id"`
}

func (n Node) IsRoot() bool {
	return n.ParentID == nil
}

// Row is a flat department record as read for display.
type Row struct {
	ID            int64
	ParentID      *int64
	EmployeeCount int64
}

// Shape is the number of departments on each level, root level first.
type Shape struct {
	LevelCounts []int
}

// DefaultShape is the 5-level, 25-department organization.
var DefaultShape = Shape{LevelCounts: []int{1, 3, 5, 7, 9}}

func (s Shape) Levels() int {
	return len(s.LevelCounts)
}

func (s Shape) Total() int {
	return s.cumulative(len(s.LevelCounts))
}

// cumulative is the number of departments on the first n levels.
func (s Shape) cumulative(n int) int {
	total := 0
	for _, c := range s.LevelCounts[:n] {
		total += c
	}
	return total
}

func (s Shape) Validate() error {
	if len(s.LevelCounts) == 0 {
		return internal.NewConfigurationError("department tree needs at least one level", internal.ErrCodeInvalidConfig)
	}
	if s.LevelCounts[0] != 1 {
		return internal.NewConfigurationError("department tree must have exactly one root", internal.ErrCodeInvalidConfig)
	}
	for i, c := range s.LevelCounts {
		if c <= 0 {
			return internal.NewConfigurationError(fmt.Sprintf("level %d must have > 0 departments", i+1), internal.ErrCodeInvalidConfig)
		}
	}
	return nil
}

func FromDataModel(d *departmentDatamodel.Department) Node {
	return Node{ID: d.ID, ParentID: d.ParentID}
}

func RowFromDataModel(r departmentDatamodel.DepartmentRow) Row {
	return Row{ID: r.ID, ParentID: r.ParentID, EmployeeCount: r.EmployeeCount}
}
