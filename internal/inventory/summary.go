package inventory

import "github.com/shopspring/decimal"

// Summarize computes the inventory summary over a material collection.
// Callers pass active materials only; the function never mutates input.
func Summarize(materials []Material) Summary {
	s := Summary{
		TotalValue: decimal.Zero,
		ByCategory: map[string]int{},
	}
	for _, m := range materials {
		s.Count++
		if m.IsLowStock() {
			s.LowStockCount++
		}
		s.TotalValue = s.TotalValue.Add(m.TotalValue())
		s.ByCategory[m.Category]++
	}
	return s
}
