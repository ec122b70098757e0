package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/orgtree/db"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files (embedded, or under --dir)",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory; the embedded migrations are used when empty")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	sqlDB, err := goose.OpenDBWithDriver(driverName, cfg.Database.Source)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer sqlDB.Close()

	src := db.Source{Dir: migrateDir}
	if migrateRollback {
		if err := db.Down(ctx, sqlDB, "postgres", src); err != nil {
			log.Fatalf("goose down: %v", err)
		}
		return nil
	}

	if err := db.Up(ctx, sqlDB, "postgres", src); err != nil {
		log.Fatalf("goose up: %v", err)
	}
	return nil
}
