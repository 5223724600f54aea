package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// Handler wires the combined dashboard endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.overview)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	month := shared.CurrentReferenceMonth(h.now())
	if raw := r.URL.Query().Get("mes"); raw != "" {
		parsed, err := shared.ParseReferenceMonth(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Mês inválido", "Use o formato YYYY-MM.")
			return
		}
		month = parsed
	}
	overview, err := h.service.Overview(r.Context(), month)
	if err != nil {
		h.logger.Error("dashboard overview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, overview)
}
