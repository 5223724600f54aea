package members

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// Member is a temple member tracked for monthly dues.
type Member struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	BirthDate        *time.Time      `json:"birth_date,omitempty"`
	JoinDate         time.Time       `json:"join_date"`
	MonthlyDueAmount decimal.Decimal `json:"monthly_due_amount"`
	Active           bool            `json:"active"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DuesPayment is an immutable record of a monthly dues payment.
type DuesPayment struct {
	ID             int64                 `json:"id"`
	MemberID       int64                 `json:"member_id"`
	ReferenceMonth shared.ReferenceMonth `json:"reference_month"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	PaymentDate    time.Time             `json:"payment_date"`
	Notes          string                `json:"notes,omitempty"`
	Code           string                `json:"code"`
	CreatedAt      time.Time             `json:"created_at"`
}

// MemberInput carries a validated member form.
type MemberInput struct {
	Name             string
	Phone            string
	Email            string
	Address          string
	BirthDate        *time.Time
	MonthlyDueAmount decimal.Decimal
	Notes            string
}

// PaymentInput describes a proposed dues payment.
type PaymentInput struct {
	MemberID       int64
	ReferenceMonth shared.ReferenceMonth
	AmountPaid     decimal.Decimal
	PaymentDate    time.Time
	Notes          string
}

// Summary aggregates the membership for a reference month.
type Summary struct {
	Count                  int                   `json:"count"`
	ExpectedMonthlyRevenue decimal.Decimal       `json:"expected_monthly_revenue"`
	CurrentMonthRevenue    decimal.Decimal       `json:"current_month_revenue"`
	DelinquentCount        int                   `json:"delinquent_count"`
	AdherencePercent       decimal.Decimal       `json:"adherence_percent"`
	ReferenceMonth         shared.ReferenceMonth `json:"reference_month"`
}

// ErrUnknownMember indicates a payment against a missing or inactive member.
var ErrUnknownMember = errors.New("members: unknown member")

// ErrDuplicatePayment indicates a second payment for the same member and
// reference month.
var ErrDuplicatePayment = errors.New("members: payment already recorded for this month")

// ErrNegativeAmount indicates a payment amount below zero.
var ErrNegativeAmount = errors.New("members: amount paid must be >= 0")

// ErrNegativeDue indicates a monthly due amount below zero.
var ErrNegativeDue = errors.New("members: monthly due amount must be >= 0")
