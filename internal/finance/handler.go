package finance

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the finance module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the finance handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transacoes", h.list)
	r.Post("/transacoes", h.create)
	r.Get("/transacoes/{id}", h.get)
	r.Put("/transacoes/{id}", h.update)
	r.Delete("/transacoes/{id}", h.delete)
	r.Get("/resumo-financeiro", h.summary)
	r.Get("/categorias", h.categories)
}

type transactionForm struct {
	Description string `json:"description" validate:"required,max=200"`
	Amount      string `json:"amount" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=revenue expense"`
	Category    string `json:"category" validate:"required,max=100"`
	Subcategory string `json:"subcategory" validate:"max=100"`
	MemberID    *int64 `json:"member_id"`
	Date        string `json:"date"`
}

func (h *Handler) parseForm(r *http.Request) (TransactionInput, error) {
	var form transactionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		return TransactionInput{}, err
	}
	if err := h.validate.Struct(form); err != nil {
		return TransactionInput{}, err
	}
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		return TransactionInput{}, err
	}
	input := TransactionInput{
		Description: form.Description,
		Amount:      amount,
		Kind:        Kind(form.Kind),
		Category:    form.Category,
		Subcategory: form.Subcategory,
		MemberID:    form.MemberID,
	}
	if form.Date != "" {
		date, err := time.Parse("2006-01-02", form.Date)
		if err != nil {
			return TransactionInput{}, err
		}
		input.Date = date
	}
	return input, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list transactions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, txs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tx)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tx, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tx, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tx)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("financial summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, CategoryCatalog())
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidKind, ErrNegativeAmount:
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
