package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.True(t, s.Revenues.IsZero())
	require.True(t, s.Expenses.IsZero())
	require.True(t, s.Balance.IsZero())
	require.Empty(t, s.RevenueByCategory)
	require.Empty(t, s.ExpenseByCategory)
}

func TestSummarizeBalance(t *testing.T) {
	txs := []Transaction{
		{Kind: KindRevenue, Category: "Mensalidades", Amount: dec("150.00")},
		{Kind: KindRevenue, Category: "Doações", Amount: dec("49.90")},
		{Kind: KindExpense, Category: "Limpeza", Amount: dec("30.10")},
	}
	s := Summarize(txs)
	require.True(t, dec("199.90").Equal(s.Revenues), "revenues = %s", s.Revenues)
	require.True(t, dec("30.10").Equal(s.Expenses), "expenses = %s", s.Expenses)
	require.True(t, dec("169.80").Equal(s.Balance), "balance = %s", s.Balance)
	require.True(t, dec("150.00").Equal(s.RevenueByCategory["Mensalidades"]))
	require.True(t, dec("30.10").Equal(s.ExpenseByCategory["Limpeza"]))
}

func TestSummarizeOrderInvariant(t *testing.T) {
	a := []Transaction{
		{Kind: KindRevenue, Category: "Doações", Amount: dec("0.10")},
		{Kind: KindRevenue, Category: "Doações", Amount: dec("0.20")},
		{Kind: KindExpense, Category: "Água", Amount: dec("0.30")},
	}
	b := []Transaction{a[2], a[0], a[1]}

	sa := Summarize(a)
	sb := Summarize(b)
	require.True(t, sa.Balance.Equal(sb.Balance))
	require.True(t, sa.Revenues.Equal(sb.Revenues))
	require.True(t, sa.Expenses.Equal(sb.Expenses))
}

func TestSummarizeExactCents(t *testing.T) {
	// 0.1 added ten times must be exactly 1, not 0.9999999999999999.
	txs := make([]Transaction, 10)
	for i := range txs {
		txs[i] = Transaction{Kind: KindRevenue, Category: "Doações", Amount: dec("0.1")}
	}
	s := Summarize(txs)
	require.True(t, dec("1").Equal(s.Revenues), "revenues = %s", s.Revenues)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	txs := []Transaction{{Kind: KindRevenue, Category: "Doações", Amount: dec("5.00")}}
	_ = Summarize(txs)
	require.True(t, dec("5.00").Equal(txs[0].Amount))
}
