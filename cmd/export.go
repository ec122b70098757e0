package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/orgtree/internal/department"
	departmentPostgres "github.com/frahmantamala/orgtree/internal/department/postgres"
	"github.com/frahmantamala/orgtree/internal/export"
	"github.com/frahmantamala/orgtree/pkg/logger"
	"github.com/spf13/cobra"
)

var exportOut string

var exportTreeCmd = &cobra.Command{
	Use:   "export-tree",
	Short: "Write the department hierarchy to an xlsx workbook",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		rows, err := departmentPostgres.NewTreeReader(sqlxDB).ListRows(context.Background())
		if err != nil {
			log.Fatalf("failed to read departments: %v", err)
		}
		forest, err := department.Assemble(rows, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "department hierarchy is inconsistent: %v\n", err)
			os.Exit(1)
		}

		buf, err := export.TreeWorkbook(forest)
		if err != nil {
			log.Fatalf("failed to build workbook: %v", err)
		}
		if err := os.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", exportOut, err)
		}

		logger.L().Info("department tree exported", "path", exportOut, "departments", len(rows))
	},
}

func init() {
	exportTreeCmd.Flags().StringVarP(&exportOut, "out", "o", "tree.xlsx", "output file")
}
