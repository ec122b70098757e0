package postgres

import (
	"context"
	"fmt"

	departmentDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/department"
	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/jmoiron/sqlx"
)

const listRowsQuery = `
SELECT d.id, d.parent_id, COUNT(e.id) AS employee_count
FROM departments d
LEFT JOIN employees e ON e.department_id = d.id
GROUP BY d.id, d.parent_id
ORDER BY d.id`

// TreeReader is the read path for hierarchy rendering.
type TreeReader struct {
	db *sqlx.DB
}

func NewTreeReader(db *sqlx.DB) *TreeReader {
	return &TreeReader{db: db}
}

func (r *TreeReader) ListRows(ctx context.Context) ([]department.Row, error) {
	var rows []departmentDatamodel.DepartmentRow
	if err := r.db.SelectContext(ctx, &rows, listRowsQuery); err != nil {
		return nil, fmt.Errorf("list department rows: %w", err)
	}

	out := make([]department.Row, len(rows))
	for i, row := range rows {
		out[i] = department.RowFromDataModel(row)
	}
	return out, nil
}
