package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/orgtree/internal/core/datamodel"
	departmentDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/employee"
	"github.com/frahmantamala/orgtree/internal/department"
	"gorm.io/gorm"
)

// departmentColumns is the bind variable count of one inserted department row.
const departmentColumns = 3

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&departmentDatamodel.Department{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return count, nil
}

func (r *DepartmentRepository) ListOrdered(ctx context.Context, limit int) ([]department.Node, error) {
	query := r.db.WithContext(ctx).
		Model(&departmentDatamodel.Department{}).
		Select("id", "parent_id").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []*departmentDatamodel.Department
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	nodes := make([]department.Node, len(rows))
	for i, row := range rows {
		nodes[i] = department.FromDataModel(row)
	}
	return nodes, nil
}

// BulkCreate inserts one department per entry, each parented to the given id
// (nil for a root).
func (r *DepartmentRepository) BulkCreate(ctx context.Context, parentIDs []*int64, batchSize int) error {
	if len(parentIDs) == 0 {
		return nil
	}

	rows := make([]*departmentDatamodel.Department, len(parentIDs))
	for i, parentID := range parentIDs {
		rows[i] = &departmentDatamodel.Department{ParentID: parentID}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, datamodel.InsertChunk(batchSize, departmentColumns)).Error; err != nil {
		return fmt.Errorf("bulk insert departments: %w", err)
	}
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*department.Node, error) {
	var row departmentDatamodel.Department
	err := r.db.WithContext(ctx).Select("id", "parent_id").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load department %d: %w", id, err)
	}
	node := department.FromDataModel(&row)
	return &node, nil
}

func (r *DepartmentRepository) UpdateParent(ctx context.Context, id int64, parentID *int64) error {
	err := r.db.WithContext(ctx).
		Model(&departmentDatamodel.Department{}).
		Where("id = ?", id).
		Update("parent_id", parentID).Error
	if err != nil {
		return fmt.Errorf("update department %d parent: %w", id, err)
	}
	return nil
}

func (r *DepartmentRepository) DeleteSubtree(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("department_id IN ?", ids).Delete(&employeeDatamodel.Employee{})
		if res.Error != nil {
			return fmt.Errorf("delete employees: %w", res.Error)
		}
		removed = res.RowsAffected

		// Children reference their parents, so detach the subtree before removing it.
		if err := tx.Model(&departmentDatamodel.Department{}).
			Where("id IN ?", ids).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach departments: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&departmentDatamodel.Department{}).Error; err != nil {
			return fmt.Errorf("delete departments: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
