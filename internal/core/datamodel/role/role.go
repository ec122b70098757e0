package role

import "time"

type Role struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;size:255;uniqueIndex;not null"`
	BaselineSalary int64     `gorm:"column:baseline_salary;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}
