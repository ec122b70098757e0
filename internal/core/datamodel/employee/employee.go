package employee

import "time"

type Employee struct {
	ID             int64     `gorm:"primaryKey"`
	FullName       string    `gorm:"column:full_name;size:255;not null"`
	RoleID         int64     `gorm:"column:role_id;not null;index"`
	DepartmentID   int64     `gorm:"column:department_id;not null;index"`
	Salary         int64     `gorm:"column:salary;not null"`
	EmploymentDate time.Time `gorm:"column:employment_date;not null;index"`
}

func (Employee) TableName() string {
	return "employees"
}
