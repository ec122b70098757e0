package employee

import (
	"time"

	"github.com/frahmantamala/orgtree/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/employee"
)

type Employee struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	RoleID         int64     `json:"role_id"`
	DepartmentID   int64     `json:"department_id"`
	Salary         int64     `json:"salary"`
	EmploymentDate time.Time `json:"employment_date"`
}

// NewEmployee validates the record against the baseline salary of its role.
func NewEmployee(fullName string, roleID, roleBaseline, departmentID, salary int64, employmentDate time.Time) (*Employee, error) {
	if err := validation.ValidateEmployee(fullName, roleID, roleBaseline, salary, employmentDate); err != nil {
		return nil, err
	}
	return &Employee{
		FullName:       fullName,
		RoleID:         roleID,
		DepartmentID:   departmentID,
		Salary:         salary,
		EmploymentDate: employmentDate,
	}, nil
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		FullName:       e.FullName,
		RoleID:         e.RoleID,
		DepartmentID:   e.DepartmentID,
		Salary:         e.Salary,
		EmploymentDate: e.EmploymentDate,
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:             e.ID,
		FullName:       e.FullName,
		RoleID:         e.RoleID,
		DepartmentID:   e.DepartmentID,
		Salary:         e.Salary,
		EmploymentDate: e.EmploymentDate,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:             e.ID,
		FullName:       e.FullName,
		RoleID:         e.RoleID,
		DepartmentID:   e.DepartmentID,
		Salary:         e.Salary,
		EmploymentDate: e.EmploymentDate,
	}
}
