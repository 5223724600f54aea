package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the inventory module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/materiais", h.listMaterials)
	r.Post("/materiais", h.createMaterial)
	r.Get("/materiais/{id}", h.getMaterial)
	r.Put("/materiais/{id}", h.updateMaterial)
	r.Delete("/materiais/{id}", h.deleteMaterial)
	r.Post("/materiais/{id}/movimentar", h.postMovement)
	r.Get("/materiais/{id}/movimentacoes", h.listMaterialMovements)
	r.Get("/movimentacoes", h.listRecentMovements)
	r.Get("/resumo-estoque", h.summary)
	r.Get("/categorias-materiais", h.catalog)
}

// materialResponse adds the derived figures the list views render.
type materialResponse struct {
	Material
	TotalValue decimal.Decimal `json:"total_value"`
	LowStock   bool            `json:"low_stock"`
}

func toResponse(m Material) materialResponse {
	return materialResponse{Material: m, TotalValue: m.TotalValue(), LowStock: m.IsLowStock()}
}

type materialForm struct {
	Name            string `json:"name" validate:"required,max=200"`
	Description     string `json:"description"`
	Category        string `json:"category" validate:"required,max=100"`
	Subcategory     string `json:"subcategory" validate:"max=100"`
	UnitOfMeasure   string `json:"unit_of_measure" validate:"max=20"`
	UnitPrice       string `json:"unit_price" validate:"required"`
	InitialQuantity string `json:"initial_quantity"`
	MinimumQuantity string `json:"minimum_quantity"`
	Supplier        string `json:"supplier" validate:"max=200"`
	StorageLocation string `json:"storage_location" validate:"max=100"`
	Notes           string `json:"notes"`
}

type movementForm struct {
	Kind     string `json:"kind" validate:"required,oneof=in out adjust"`
	Quantity string `json:"quantity" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=200"`
	Notes    string `json:"notes"`
}

func parseDecimal(raw, fallback string) (decimal.Decimal, error) {
	if raw == "" {
		raw = fallback
	}
	return decimal.NewFromString(raw)
}

func (h *Handler) parseMaterialForm(r *http.Request) (MaterialInput, error) {
	var form materialForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		return MaterialInput{}, err
	}
	if err := h.validate.Struct(form); err != nil {
		return MaterialInput{}, err
	}
	price, err := parseDecimal(form.UnitPrice, "0")
	if err != nil {
		return MaterialInput{}, err
	}
	initial, err := parseDecimal(form.InitialQuantity, "0")
	if err != nil {
		return MaterialInput{}, err
	}
	// Low-stock alert threshold defaults to 5 units.
	minimum, err := parseDecimal(form.MinimumQuantity, "5")
	if err != nil {
		return MaterialInput{}, err
	}
	return MaterialInput{
		Name:            form.Name,
		Description:     form.Description,
		Category:        form.Category,
		Subcategory:     form.Subcategory,
		UnitOfMeasure:   form.UnitOfMeasure,
		UnitPrice:       price,
		InitialQuantity: initial,
		MinimumQuantity: minimum,
		Supplier:        form.Supplier,
		StorageLocation: form.StorageLocation,
		Notes:           form.Notes,
	}, nil
}

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.service.ListMaterials(r.Context())
	if err != nil {
		h.logger.Error("list materials", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]materialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toResponse(m))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}
	m, err := h.service.GetMaterial(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseMaterialForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.CreateMaterial(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}
	input, err := h.parseMaterialForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.UpdateMaterial(r.Context(), id, input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeactivateMaterial(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

type movementResponse struct {
	Material materialResponse `json:"material"`
	Movement StockMovement    `json:"movement"`
}

func (h *Handler) postMovement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}
	var form movementForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	qty, err := decimal.NewFromString(form.Quantity)
	if err != nil {
		// Non-numeric quantity fails before the stock rule is evaluated.
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", ErrInvalidQuantity.Error())
		return
	}
	material, movement, err := h.service.PostMovement(r.Context(), id, MovementInput{
		Kind:     MovementKind(form.Kind),
		Quantity: qty,
		Reason:   form.Reason,
		Notes:    form.Notes,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, movementResponse{Material: toResponse(material), Movement: movement})
}

func (h *Handler) listMaterialMovements(w http.ResponseWriter, r *http.Request) {
	id, ok := h.materialID(w, r)
	if !ok {
		return
	}
	movements, err := h.service.ListMovements(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movements)
}

func (h *Handler) listRecentMovements(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	movements, err := h.service.ListRecentMovements(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, movements)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("inventory summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, CategoryCatalog())
}

func (h *Handler) materialID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid material id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	var insufficient *InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", insufficient.Error())
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidKind), errors.Is(err, ErrNegativePrice):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
