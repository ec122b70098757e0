package role

import (
	"github.com/frahmantamala/orgtree/internal/core/common/validation"
	roleDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/role"
)

type Role struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BaselineSalary int64  `json:"baseline_salary"`
}

// Baseline is the slice of a role the employee generator needs.
type Baseline struct {
	ID             int64
	BaselineSalary int64
}

func NewRole(name string, baselineSalary int64) (*Role, error) {
	if err := validation.ValidateRole(name, baselineSalary); err != nil {
		return nil, err
	}
	return &Role{Name: name, BaselineSalary: baselineSalary}, nil
}

func (r *Role) Baseline() Baseline {
	return Baseline{ID: r.ID, BaselineSalary: r.BaselineSalary}
}

func (r *Role) ToResponse() RoleResponse {
	return RoleResponse{
		ID:             r.ID,
		Name:           r.Name,
		BaselineSalary: r.BaselineSalary,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:             r.ID,
		Name:           r.Name,
		BaselineSalary: r.BaselineSalary,
	}
}

func FromDataModel(r *roleDatamodel.Role) *Role {
	return &Role{
		ID:             r.ID,
		Name:           r.Name,
		BaselineSalary: r.BaselineSalary,
	}
}
