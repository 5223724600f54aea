package app

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/dashboard"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/finance"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/products"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.Default()
	return NewRouter(RouterParams{
		Logger:           logger,
		Config:           &Config{AppRequestTimeout: 0},
		FinanceHandler:   finance.NewHandler(logger, nil),
		InventoryHandler: inventory.NewHandler(logger, nil),
		MembersHandler:   members.NewHandler(logger, nil),
		ProductsHandler:  products.NewHandler(logger, nil),
		DashboardHandler: dashboard.NewHandler(logger, nil),
		Metrics:          observability.NewMetrics(),
	})
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSecureHeadersApplied(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := testRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
