package members

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// Handler wires HTTP endpoints for the members module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs the members handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New(), now: time.Now}
}

// MountRoutes registers member routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/membros", h.listMembers)
	r.Post("/membros", h.createMember)
	r.Get("/membros/inadimplentes", h.listDelinquents)
	r.Get("/membros/{id}", h.getMember)
	r.Put("/membros/{id}", h.updateMember)
	r.Delete("/membros/{id}", h.deleteMember)
	r.Get("/membros/{id}/pagamentos", h.listMemberPayments)
	r.Get("/pagamentos-mensalidade", h.listPayments)
	r.Post("/pagamentos-mensalidade", h.createPayment)
	r.Delete("/pagamentos-mensalidade/{id}", h.deletePayment)
	r.Get("/resumo-membros", h.summary)
}

type memberForm struct {
	Name             string `json:"name" validate:"required,max=200"`
	Phone            string `json:"phone" validate:"max=20"`
	Email            string `json:"email" validate:"omitempty,email,max=200"`
	Address          string `json:"address"`
	BirthDate        string `json:"birth_date"`
	MonthlyDueAmount string `json:"monthly_due_amount"`
	Notes            string `json:"notes"`
}

type paymentForm struct {
	MemberID       int64  `json:"member_id" validate:"required,gt=0"`
	ReferenceMonth string `json:"reference_month" validate:"required"`
	AmountPaid     string `json:"amount_paid" validate:"required"`
	PaymentDate    string `json:"payment_date"`
	Notes          string `json:"notes"`
}

func (h *Handler) parseMemberForm(r *http.Request) (MemberInput, error) {
	var form memberForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		return MemberInput{}, err
	}
	if err := h.validate.Struct(form); err != nil {
		return MemberInput{}, err
	}
	due := decimal.Zero
	if form.MonthlyDueAmount != "" {
		var err error
		if due, err = decimal.NewFromString(form.MonthlyDueAmount); err != nil {
			return MemberInput{}, err
		}
	}
	input := MemberInput{
		Name:             form.Name,
		Phone:            form.Phone,
		Email:            form.Email,
		Address:          form.Address,
		MonthlyDueAmount: due,
		Notes:            form.Notes,
	}
	if form.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", form.BirthDate)
		if err != nil {
			return MemberInput{}, err
		}
		input.BirthDate = &birth
	}
	return input, nil
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := h.service.ListMembers(r.Context())
	if err != nil {
		h.logger.Error("list members", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ms)
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	m, err := h.service.GetMember(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseMemberForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.CreateMember(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	input, err := h.parseMemberForm(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	m, err := h.service.UpdateMember(r.Context(), id, input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeactivateMember(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listMemberPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	payments, err := h.service.ListMemberPayments(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var form paymentForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	month, err := shared.ParseReferenceMonth(form.ReferenceMonth)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	amount, err := decimal.NewFromString(form.AmountPaid)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input := PaymentInput{
		MemberID:       form.MemberID,
		ReferenceMonth: month,
		AmountPaid:     amount,
		Notes:          form.Notes,
	}
	if form.PaymentDate != "" {
		date, err := time.Parse("2006-01-02", form.PaymentDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		input.PaymentDate = date
	}
	payment, err := h.service.RecordPayment(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid payment id")
		return
	}
	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listDelinquents(w http.ResponseWriter, r *http.Request) {
	month, ok := h.referenceMonth(w, r)
	if !ok {
		return
	}
	ms, err := h.service.ListDelinquents(r.Context(), month)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if ms == nil {
		ms = []Member{}
	}
	httpx.JSON(w, http.StatusOK, ms)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	month, ok := h.referenceMonth(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(r.Context(), month)
	if err != nil {
		h.logger.Error("member summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// referenceMonth reads the optional month query parameter, defaulting
// to the current month.
func (h *Handler) referenceMonth(w http.ResponseWriter, r *http.Request) (shared.ReferenceMonth, bool) {
	raw := r.URL.Query().Get("mes")
	if raw == "" {
		return shared.CurrentReferenceMonth(h.now()), true
	}
	month, err := shared.ParseReferenceMonth(raw)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return "", false
	}
	return month, true
}

func (h *Handler) memberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid member id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownMember):
		httpx.Problem(w, http.StatusNotFound, "Unknown Member", err.Error())
	case errors.Is(err, ErrDuplicatePayment):
		httpx.Problem(w, http.StatusConflict, "Duplicate Payment", err.Error())
	case errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrNegativeDue), errors.Is(err, shared.ErrInvalidReferenceMonth):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
