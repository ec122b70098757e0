package employee

import "time"

type EmployeeResponse struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	RoleID         int64     `json:"role_id"`
	DepartmentID   int64     `json:"department_id"`
	Salary         int64     `json:"salary"`
	EmploymentDate time.Time `json:"employment_date"`
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
