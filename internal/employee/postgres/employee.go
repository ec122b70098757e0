package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/orgtree/internal/core/datamodel"
	departmentDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/employee"
	"github.com/frahmantamala/orgtree/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

// employeeColumns is the bind variable count of one inserted employee row.
const employeeColumns = 6

// BulkCreate inserts the slice, split into statements that stay under the
// driver's bind variable limit.
func (r *EmployeeRepository) BulkCreate(ctx context.Context, employees []*employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	rows := make([]*employeeDatamodel.Employee, len(employees))
	for i, e := range employees {
		rows[i] = employee.ToDataModel(e)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, datamodel.InsertChunk(len(rows), employeeColumns)).Error; err != nil {
		return fmt.Errorf("bulk insert employees: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) DepartmentExists(ctx context.Context, departmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&departmentDatamodel.Department{}).
		Where("id = ?", departmentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check department %d: %w", departmentID, err)
	}
	return count > 0, nil
}

func (r *EmployeeRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count employees of department %d: %w", departmentID, err)
	}
	return count, nil
}

func (r *EmployeeRepository) ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) ([]*employee.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("full_name ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list employees of department %d: %w", departmentID, err)
	}

	employees := make([]*employee.Employee, len(rows))
	for i, row := range rows {
		employees[i] = employee.FromDataModel(row)
	}
	return employees, nil
}
