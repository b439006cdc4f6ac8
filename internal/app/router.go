package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rentdesk/rentdesk/internal/dashboard"
	"github.com/rentdesk/rentdesk/internal/identity"
	"github.com/rentdesk/rentdesk/internal/maintenance"
	"github.com/rentdesk/rentdesk/internal/observability"
	"github.com/rentdesk/rentdesk/internal/policy"
	"github.com/rentdesk/rentdesk/internal/rent"
	"github.com/rentdesk/rentdesk/internal/shared"
	"github.com/rentdesk/rentdesk/internal/tenants"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	Gate               policy.Middleware
	IdentityHandler    *identity.Handler
	TenantsHandler     *tenants.Handler
	RentHandler        *rent.Handler
	MaintenanceHandler *maintenance.Handler
	DashboardHandler   *dashboard.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with RentDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.IdentityHandler.MountRoutes)
	r.Route("/tenants", params.TenantsHandler.MountRoutes)
	r.Route("/payments", params.RentHandler.MountRoutes)
	r.Route("/maintenance", params.MaintenanceHandler.MountRoutes)
	r.Route("/dashboard", params.DashboardHandler.MountRoutes)

	r.Route("/admin", func(r chi.Router) {
		r.Use(params.Gate.RequireAdmin)
		params.IdentityHandler.MountAdminRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
