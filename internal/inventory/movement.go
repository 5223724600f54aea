package inventory

import "github.com/shopspring/decimal"

// NextQuantity decides whether a proposed movement is legal against the
// current on-hand quantity and returns the quantity after applying it.
// Quantity bounds are checked before the stock rule, so an out of -3
// fails with ErrInvalidQuantity rather than ErrInsufficientStock.
func NextQuantity(current decimal.Decimal, kind MovementKind, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case MovementIn:
		if !quantity.IsPositive() {
			return decimal.Zero, ErrInvalidQuantity
		}
		return current.Add(quantity), nil
	case MovementOut:
		if !quantity.IsPositive() {
			return decimal.Zero, ErrInvalidQuantity
		}
		if quantity.GreaterThan(current) {
			return decimal.Zero, &InsufficientStockError{Attempted: quantity, Available: current}
		}
		return current.Sub(quantity), nil
	case MovementAdjust:
		// Adjust carries the new absolute quantity, not a delta.
		if quantity.IsNegative() {
			return decimal.Zero, ErrInvalidQuantity
		}
		return quantity, nil
	default:
		return decimal.Zero, ErrInvalidKind
	}
}
