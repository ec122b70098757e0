package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/auth"
	"github.com/frahmantamala/orgtree/internal/department"
	departmentPostgres "github.com/frahmantamala/orgtree/internal/department/postgres"
	"github.com/frahmantamala/orgtree/internal/employee"
	employeePostgres "github.com/frahmantamala/orgtree/internal/employee/postgres"
	"github.com/frahmantamala/orgtree/internal/role"
	rolePostgres "github.com/frahmantamala/orgtree/internal/role/postgres"
	"github.com/frahmantamala/orgtree/internal/transport"
	"github.com/frahmantamala/orgtree/internal/transport/rest"
	"github.com/frahmantamala/orgtree/internal/transport/web"
	"github.com/frahmantamala/orgtree/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the department tree page and the JSON API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Options  rest.Options
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Options, deps.Logger)
	checkContract(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// checkContract warns about API routes missing from the OpenAPI document.
func checkContract(deps *Dependencies) {
	if deps.Options.OpenAPIPath == "" {
		return
	}
	doc, err := rest.LoadContract(context.Background(), deps.Options.OpenAPIPath)
	if err != nil {
		deps.Logger.Warn("openapi contract unavailable", "path", deps.Options.OpenAPIPath, "error", err)
		return
	}
	missing, err := rest.UndocumentedRoutes(deps.Router, doc, rest.APIPrefix)
	if err != nil {
		deps.Logger.Warn("failed to walk routes", "error", err)
		return
	}
	for _, route := range missing {
		deps.Logger.Warn("route not documented in openapi contract", "route", route)
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb, err := openGorm(db)
	if err != nil {
		return nil, err
	}

	base := transport.NewBaseHandler(lg)
	bus := newEventBus(lg)

	departmentService := department.NewService(
		departmentPostgres.NewDepartmentRepository(gdb),
		departmentPostgres.NewTreeReader(db),
		bus,
		lg,
	)
	treePage, err := web.NewTreePage(base, departmentService)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	authService := auth.NewService(
		config.Security.OperatorPasswordHash,
		auth.NewJWTTokenGenerator(config.Security.TokenSecret, config.Security.AccessTokenDuration),
		lg,
	)

	opts := rest.Options{
		AllowedOrigins: config.Server.AllowedOrigins,
		OpenAPIPath:    config.Server.OpenAPIPath,
	}
	if config.Observability.Metrics.Enabled {
		opts.MetricsPath = config.Observability.Metrics.Path
	}
	if config.Security.TokenSecret != "" {
		opts.Tokens = authService
	} else {
		lg.Warn("security.token_secret is empty; mutating endpoints are disabled")
	}

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:        auth.NewHandler(base, authService),
			Departments: department.NewHandler(base, departmentService),
			Employees:   employee.NewHandler(base, employee.NewService(employeePostgres.NewEmployeeRepository(gdb), lg)),
			Roles:       role.NewHandler(base, role.NewService(rolePostgres.NewRoleRepository(gdb), lg)),
			TreePage:    treePage,
		},
		Options: opts,
		Logger:  lg,
	}, nil
}
