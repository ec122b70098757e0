package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/metrics"
	"github.com/frahmantamala/orgtree/internal/seeder"
	seederPostgres "github.com/frahmantamala/orgtree/internal/seeder/postgres"
	"github.com/frahmantamala/orgtree/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var seedFlags = seeder.DefaultConfig()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed roles, the department tree and employees",
	Long: `Seed the database with a role pool, a 25 department tree five levels deep and
the requested number of employees, all in one transaction. The same --seed
always produces the same data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		run := seedConfig(cmd.Flags(), seedFlags, cfg.Seed)
		if err := run.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		gdb, err := openGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		lg := logger.LoggerWrapper()
		bus := newEventBus(lg)
		s := seeder.NewSeeder(
			seederPostgres.NewStore(gdb),
			syncPublisher{bus: bus, logger: lg},
			metrics.NewRecorder(),
			lg,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		result, err := s.Run(ctx, run)
		if err != nil {
			if appErr, ok := internal.IsAppError(err); ok {
				fmt.Fprintf(os.Stderr, "seeding failed: %s\n", appErr.GetDetailedMessage())
				if appErr.Details != nil {
					fmt.Fprintf(os.Stderr, "details: %+v\n", appErr.Details)
				}
			} else {
				fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Roles: %d, departments: %d, employees: %d (%s)\n",
			result.Roles, result.Departments, result.Employees, result.Duration.Round(time.Millisecond))
		fmt.Println("Seeding completed successfully.")
	},
}

// seedConfig starts from the config file defaults and applies the flags the
// user actually set.
func seedConfig(flags *pflag.FlagSet, set seeder.Config, defaults internal.SeedConfig) seeder.Config {
	run := set
	if !flags.Changed("employees") && defaults.Employees != 0 {
		run.Employees = defaults.Employees
	}
	if !flags.Changed("departments") && defaults.Departments != 0 {
		run.Departments = defaults.Departments
	}
	if !flags.Changed("levels") && defaults.Levels != 0 {
		run.Levels = defaults.Levels
	}
	if !flags.Changed("roles") && defaults.Roles != 0 {
		run.Roles = defaults.Roles
	}
	if !flags.Changed("seed") {
		run.Seed = defaults.Seed
	}
	if !flags.Changed("batch-size") && defaults.BatchSize != 0 {
		run.BatchSize = defaults.BatchSize
	}
	return run
}

func bindSeedFlags(f *pflag.FlagSet, cfg *seeder.Config) {
	f.IntVar(&cfg.Employees, "employees", cfg.Employees, "number of employees to create")
	f.IntVar(&cfg.Departments, "departments", cfg.Departments, "number of departments (must be 25)")
	f.IntVar(&cfg.Levels, "levels", cfg.Levels, "depth of the department tree (must be 5)")
	f.IntVar(&cfg.Roles, "roles", cfg.Roles, "size of the role pool")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	f.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "rows per insert batch")
	f.BoolVar(&cfg.Truncate, "truncate", false, "empty employees, departments and roles before seeding")
	f.BoolVar(&cfg.StrictRoles, "strict-roles", false, "fail when an existing role pool has a different size")
}

func init() {
	bindSeedFlags(seedCmd.Flags(), &seedFlags)
}
