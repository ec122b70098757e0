// Package testutil opens throwaway databases for repository and seeder tests.
package testutil

import (
	"fmt"

	departmentDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/employee"
	roleDatamodel "github.com/frahmantamala/orgtree/internal/core/datamodel/role"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite returns an in-memory database with the roles, departments and
// employees tables created. The pool is pinned to one connection because
// every sqlite memory connection is its own database.
func OpenSQLite() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&roleDatamodel.Role{}, &departmentDatamodel.Department{}, &employeeDatamodel.Employee{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}
