package postgres

import (
	"context"
	"fmt"

	departmentPostgres "github.com/frahmantamala/orgtree/internal/department/postgres"
	employeePostgres "github.com/frahmantamala/orgtree/internal/employee/postgres"
	rolePostgres "github.com/frahmantamala/orgtree/internal/role/postgres"
	"github.com/frahmantamala/orgtree/internal/seeder"
	"gorm.io/gorm"
)

// seededTables in dependency order, children first.
var seededTables = []string{"employees", "departments", "roles"}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Atomically(ctx context.Context, fn func(uow seeder.UnitOfWork) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&unitOfWork{tx: tx})
	})
}

type unitOfWork struct {
	tx *gorm.DB
}

func (u *unitOfWork) Repositories() seeder.Repositories {
	return seeder.Repositories{
		Roles:       rolePostgres.NewRoleRepository(u.tx),
		Departments: departmentPostgres.NewDepartmentRepository(u.tx),
		Employees:   employeePostgres.NewEmployeeRepository(u.tx),
	}
}

func (u *unitOfWork) Truncate(ctx context.Context) error {
	tx := u.tx.WithContext(ctx)

	switch tx.Dialector.Name() {
	case "postgres":
		if err := tx.Exec("TRUNCATE TABLE employees, departments, roles RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("truncate tables: %w", err)
		}
		return nil
	case "sqlite":
		if err := deleteAll(tx); err != nil {
			return err
		}
		var sequences int64
		if err := tx.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'").Scan(&sequences).Error; err != nil {
			return fmt.Errorf("inspect sqlite sequences: %w", err)
		}
		if sequences > 0 {
			if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name IN ?", seededTables).Error; err != nil {
				return fmt.Errorf("reset sqlite sequences: %w", err)
			}
		}
		return nil
	default:
		return deleteAll(tx)
	}
}

func deleteAll(tx *gorm.DB) error {
	if err := tx.Exec("UPDATE departments SET parent_id = NULL").Error; err != nil {
		return fmt.Errorf("detach departments: %w", err)
	}
	for _, table := range seededTables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}
