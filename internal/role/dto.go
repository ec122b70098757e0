package role

type RoleResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BaselineSalary int64  `json:"baseline_salary"`
}

type RolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}
