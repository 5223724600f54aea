package members

import (
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

var hundred = decimal.NewFromInt(100)

// IsDelinquent reports whether a member owes for the given month: a
// nonzero due amount and no payment row for that month. Any payment row
// counts as paid, regardless of the amount.
func IsDelinquent(m Member, payments []DuesPayment, month shared.ReferenceMonth) bool {
	if !m.MonthlyDueAmount.IsPositive() {
		return false
	}
	for _, p := range payments {
		if p.MemberID == m.ID && p.ReferenceMonth == month {
			return false
		}
	}
	return true
}

// Summarize computes the member summary for a reference month. Callers
// pass active members; payments may span any months. An empty member
// collection yields an adherence of 0, not a division error.
func Summarize(ms []Member, payments []DuesPayment, month shared.ReferenceMonth) Summary {
	s := Summary{
		ExpectedMonthlyRevenue: decimal.Zero,
		CurrentMonthRevenue:    decimal.Zero,
		AdherencePercent:       decimal.Zero,
		ReferenceMonth:         month,
	}

	paid := make(map[int64]bool, len(ms))
	for _, p := range payments {
		if p.ReferenceMonth == month {
			s.CurrentMonthRevenue = s.CurrentMonthRevenue.Add(p.AmountPaid)
			paid[p.MemberID] = true
		}
	}

	for _, m := range ms {
		s.Count++
		s.ExpectedMonthlyRevenue = s.ExpectedMonthlyRevenue.Add(m.MonthlyDueAmount)
		if m.MonthlyDueAmount.IsPositive() && !paid[m.ID] {
			s.DelinquentCount++
		}
	}

	if s.Count > 0 {
		current := decimal.NewFromInt(int64(s.Count - s.DelinquentCount))
		s.AdherencePercent = current.Mul(hundred).Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}
