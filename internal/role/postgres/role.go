package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/orgtree/internal/core/datamodel"
	employeeDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/employee"
	roleDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/role"
	"github.com/frahmantamala/orgtree/internal/role"
	"gorm.io/gorm"
)

// roleColumns is the bind variable count of one inserted role row.
const roleColumns = 4

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll(ctx context.Context) ([]*role.Role, error) {
	var rows []*roleDatamodel.Role
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	roles := make([]*role.Role, len(rows))
	for i, row := range rows {
		roles[i] = role.FromDataModel(row)
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*role.Role, error) {
	var row roleDatamodel.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load role %d: %w", id, err)
	}
	return role.FromDataModel(&row), nil
}

func (r *RoleRepository) BulkCreate(ctx context.Context, roles []*role.Role, batchSize int) error {
	if len(roles) == 0 {
		return nil
	}

	rows := make([]*roleDatamodel.Role, len(roles))
	for i, ro := range roles {
		rows[i] = role.ToDataModel(ro)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, datamodel.InsertChunk(batchSize, roleColumns)).Error; err != nil {
		return fmt.Errorf("bulk insert roles: %w", err)
	}
	return nil
}

func (r *RoleRepository) CountEmployees(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count employees for role %d: %w", roleID, err)
	}
	return count, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&roleDatamodel.Role{}, id).Error; err != nil {
		return fmt.Errorf("delete role %d: %w", id, err)
	}
	return nil
}
