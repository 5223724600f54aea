package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the simple inventory variant: whole-unit items sold or
// consumed without the ledger the materials module keeps.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Code        string          `json:"code"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
