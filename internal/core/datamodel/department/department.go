package department

import "time"

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	ParentID  *int64    `gorm:"column:parent_id;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentRow is the read projection used to render the hierarchy.
type DepartmentRow struct {
	ID            int64  `db:"id" gorm:"column:id"`
	ParentID      *int64 `db:"parent_id" gorm:"column:parent_id"`
	EmployeeCount int64  `db:"employee_count" gorm:"column:employee_count"`
}
