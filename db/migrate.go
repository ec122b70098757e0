// Package db carries the SQL schema migrations, embedded into the binary.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	embeddedDir = "migrations"
	tableName   = "schema_migrations"
)

// Source selects where migrations are read from. An empty Dir uses the
// embedded set.
type Source struct {
	Dir string
}

func (s Source) open() (fs.FS, string) {
	if s.Dir == "" {
		return migrationsFS, embeddedDir
	}
	return os.DirFS(s.Dir), "."
}

func prepare(src Source, dialect string) (string, error) {
	fsys, dir := src.open()
	goose.SetBaseFS(fsys)
	goose.SetTableName(tableName)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("goose dialect: %w", err)
	}
	return dir, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, sqlDB *sql.DB, dialect string, src Source) error {
	dir, err := prepare(src, dialect)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back the latest applied migration.
func Down(ctx context.Context, sqlDB *sql.DB, dialect string, src Source) error {
	dir, err := prepare(src, dialect)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Versions lists the migration versions found in src in apply order.
func Versions(src Source) ([]int64, error) {
	dir, err := prepare(src, "postgres")
	if err != nil {
		return nil, err
	}
	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("collect migrations: %w", err)
	}
	versions := make([]int64, 0, len(migrations))
	for _, m := range migrations {
		versions = append(versions, m.Version)
	}
	return versions, nil
}
