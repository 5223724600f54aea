package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind enumerates the supported stock movements.
type MovementKind string

const (
	// MovementIn represents an inbound movement (entrada).
	MovementIn MovementKind = "in"
	// MovementOut represents an outbound movement (saida).
	MovementOut MovementKind = "out"
	// MovementAdjust replaces the on-hand quantity with an absolute value (ajuste).
	MovementAdjust MovementKind = "adjust"
)

// Valid reports whether the kind is one of the known values.
func (k MovementKind) Valid() bool {
	return k == MovementIn || k == MovementOut || k == MovementAdjust
}

// Material is a rich inventory item tracked by the stock ledger.
// Quantities are decimal because units like kg and litro are fractional.
type Material struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	Supplier        string          `json:"supplier,omitempty"`
	StorageLocation string          `json:"storage_location,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TotalValue is the on-hand value of the material.
func (m Material) TotalValue() decimal.Decimal {
	return m.UnitPrice.Mul(m.CurrentQuantity)
}

// IsLowStock reports whether the on-hand quantity fell below the minimum.
func (m Material) IsLowStock() bool {
	return m.CurrentQuantity.LessThan(m.MinimumQuantity)
}

// StockMovement is an append-only ledger entry. Movements are never
// updated or deleted once recorded.
type StockMovement struct {
	ID         int64           `json:"id"`
	MaterialID int64           `json:"material_id"`
	Kind       MovementKind    `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	Notes      string          `json:"notes,omitempty"`
	Code       string          `json:"code"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MaterialInput carries a validated material form.
type MaterialInput struct {
	Name            string
	Description     string
	Category        string
	Subcategory     string
	UnitOfMeasure   string
	UnitPrice       decimal.Decimal
	InitialQuantity decimal.Decimal
	MinimumQuantity decimal.Decimal
	Supplier        string
	StorageLocation string
	Notes           string
}

// MovementInput describes a proposed movement against a material.
type MovementInput struct {
	Kind     MovementKind
	Quantity decimal.Decimal
	Reason   string
	Notes    string
}

// Summary aggregates the active materials for the dashboard.
type Summary struct {
	Count         int             `json:"count"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ByCategory    map[string]int  `json:"by_category"`
}

// ErrInvalidQuantity indicates a quantity outside the legal range for
// the movement kind. It is checked before any stock rule.
var ErrInvalidQuantity = errors.New("inventory: invalid quantity")

// ErrInvalidKind indicates an unknown movement kind.
var ErrInvalidKind = errors.New("inventory: kind must be in, out or adjust")

// ErrNegativePrice indicates a unit price below zero.
var ErrNegativePrice = errors.New("inventory: unit price must be >= 0")

// ErrInsufficientStock is matched by errors.Is against
// InsufficientStockError values.
var ErrInsufficientStock = errors.New("inventory: insufficient stock")

// InsufficientStockError reports an outbound movement larger than the
// on-hand quantity, carrying both figures for the operator.
type InsufficientStockError struct {
	Attempted decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("inventory: insufficient stock: attempted %s, available %s", e.Attempted, e.Available)
}

// Is lets callers match with errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
