package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

type stubMaterials struct {
	materials []inventory.Material
}

func (s *stubMaterials) ListMaterials(ctx context.Context) ([]inventory.Material, error) {
	return s.materials, nil
}

type stubDelinquents struct {
	members   []members.Member
	lastMonth shared.ReferenceMonth
}

func (s *stubDelinquents) ListDelinquents(ctx context.Context, month shared.ReferenceMonth) ([]members.Member, error) {
	s.lastMonth = month
	return s.members, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLowStockScanCountsActiveBelowMinimum(t *testing.T) {
	stub := &stubMaterials{materials: []inventory.Material{
		{ID: 1, Name: "Vela branca", CurrentQuantity: dec("2"), MinimumQuantity: dec("5"), Active: true},
		{ID: 2, Name: "Arruda", CurrentQuantity: dec("10"), MinimumQuantity: dec("5"), Active: true},
		{ID: 3, Name: "Carvão", CurrentQuantity: dec("0"), MinimumQuantity: dec("5"), Active: false},
	}}
	job := NewLowStockScanJob(stub, nil, nil)

	task, err := NewLowStockScanTask(LowStockScanPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestDelinquencyDigestDefaultsToCurrentMonth(t *testing.T) {
	stub := &stubDelinquents{members: []members.Member{
		{ID: 1, Name: "Maria", MonthlyDueAmount: dec("50.00"), Active: true},
	}}
	job := NewDelinquencyDigestJob(stub, nil, nil)
	job.clock = func() time.Time { return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) }

	task, err := NewDelinquencyDigestTask(DelinquencyDigestPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, shared.ReferenceMonth("2024-05"), stub.lastMonth)
}

func TestDelinquencyDigestRejectsBadMonth(t *testing.T) {
	job := NewDelinquencyDigestJob(&stubDelinquents{}, nil, nil)
	task, err := NewDelinquencyDigestTask(DelinquencyDigestPayload{ReferenceMonth: "05/2024"})
	require.NoError(t, err)
	require.Error(t, job.Handle(context.Background(), task))
}
