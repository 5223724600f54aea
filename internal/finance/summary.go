package finance

import "github.com/shopspring/decimal"

// Summarize computes the financial summary over a transaction
// collection. It never mutates its input and an empty collection
// yields an all-zero summary.
func Summarize(txs []Transaction) Summary {
	s := Summary{
		Revenues:          decimal.Zero,
		Expenses:          decimal.Zero,
		Balance:           decimal.Zero,
		RevenueByCategory: map[string]decimal.Decimal{},
		ExpenseByCategory: map[string]decimal.Decimal{},
	}
	for _, tx := range txs {
		switch tx.Kind {
		case KindRevenue:
			s.Revenues = s.Revenues.Add(tx.Amount)
			s.RevenueByCategory[tx.Category] = s.RevenueByCategory[tx.Category].Add(tx.Amount)
		case KindExpense:
			s.Expenses = s.Expenses.Add(tx.Amount)
			s.ExpenseByCategory[tx.Category] = s.ExpenseByCategory[tx.Category].Add(tx.Amount)
		}
	}
	s.Balance = s.Revenues.Sub(s.Expenses)
	return s
}
