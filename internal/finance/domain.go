package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Kind separates money coming in from money going out.
type Kind string

const (
	// KindRevenue marks income transactions.
	KindRevenue Kind = "revenue"
	// KindExpense marks outgoing transactions.
	KindExpense Kind = "expense"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindRevenue || k == KindExpense
}

// Transaction is a single financial record. Amount is always
// non-negative; the sign is implied by Kind.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"kind"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	MemberID    *int64          `json:"member_id,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Summary aggregates a transaction collection for the dashboard.
type Summary struct {
	Revenues          decimal.Decimal            `json:"revenues"`
	Expenses          decimal.Decimal            `json:"expenses"`
	Balance           decimal.Decimal            `json:"balance"`
	RevenueByCategory map[string]decimal.Decimal `json:"revenue_by_category"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
}

// TransactionInput carries a validated form for create and update.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Kind        Kind
	Category    string
	Subcategory string
	MemberID    *int64
	Date        time.Time
}

// ErrInvalidKind indicates an unknown transaction kind.
var ErrInvalidKind = errors.New("finance: kind must be revenue or expense")

// ErrNegativeAmount indicates a transaction amount below zero.
var ErrNegativeAmount = errors.New("finance: amount must be >= 0")
