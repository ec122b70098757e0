package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/orgtree/internal"
	"github.com/frahmantamala/orgtree/internal/auth"
	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/frahmantamala/orgtree/internal/employee"
	"github.com/frahmantamala/orgtree/internal/metrics"
	"github.com/frahmantamala/orgtree/internal/role"
	"github.com/frahmantamala/orgtree/internal/transport"
	"github.com/frahmantamala/orgtree/internal/transport/middleware"
	"github.com/frahmantamala/orgtree/internal/transport/swagger"
	"github.com/frahmantamala/orgtree/internal/transport/web"
	"github.com/go-chi/chi"
)

const APIPrefix = "/api/v1"

type Handlers struct {
	Auth        *auth.Handler
	Departments *department.Handler
	Employees   *employee.Handler
	Roles       *role.Handler
	TreePage    *web.TreePage
}

type Options struct {
	AllowedOrigins string
	OpenAPIPath    string
	// MetricsPath mounts the prometheus handler when non-empty.
	MetricsPath string
	// Tokens guards the mutating routes. When nil they answer 401.
	Tokens middleware.TokenValidator
}

func RegisterAllRoutes(router *chi.Mux, db Pinger, h Handlers, opts Options, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	healthHandler := NewHealthHandler(base, db)

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if h.TreePage != nil {
		router.Get("/", metrics.Instrument("tree_page", h.TreePage.Render))
	}

	if opts.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	if opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, metrics.Handler())
	}

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/health", healthHandler.Check)
		r.Get("/ping", healthHandler.Ping)

		if h.Auth != nil {
			r.Post("/auth/token", h.Auth.IssueToken)
		}
		if h.Departments != nil {
			r.Get("/departments/tree", metrics.Instrument("departments_tree", h.Departments.GetTree))
		}
		if h.Employees != nil {
			r.Get("/departments/{id}/employees", h.Employees.ListByDepartment)
		}
		if h.Roles != nil {
			r.Get("/roles", h.Roles.GetRoles)
		}

		// Mutations need an operator token.
		r.Group(func(pr chi.Router) {
			if opts.Tokens != nil {
				pr.Use(middleware.RequireOperator(base, opts.Tokens))
			} else {
				pr.Use(tokensNotConfigured(base))
			}

			if h.Departments != nil {
				pr.Patch("/departments/{id}/parent", h.Departments.ChangeParent)
				pr.Delete("/departments/{id}", h.Departments.DeleteDepartment)
			}
			if h.Roles != nil {
				pr.Delete("/roles/{id}", h.Roles.DeleteRole)
			}
		})
	})
}

func tokensNotConfigured(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			base.WriteAppError(w, internal.NewUnauthorizedError("token authentication is not configured", internal.ErrCodeInvalidToken))
		})
	}
}
