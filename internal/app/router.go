package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/dashboard"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/finance"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/products"
	"github.com/Intern-Yago/cabocloPenaBranca/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	FinanceHandler   *finance.Handler
	InventoryHandler *inventory.Handler
	MembersHandler   *members.Handler
	ProductsHandler  *products.Handler
	DashboardHandler *dashboard.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with the API mounted under /api.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.FinanceHandler.MountRoutes(r)
		params.InventoryHandler.MountRoutes(r)
		params.MembersHandler.MountRoutes(r)
		params.ProductsHandler.MountRoutes(r)
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
