package dashboard

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/finance"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

type mockProviders struct {
	finance      finance.Summary
	financeCalls int
}

func (m *mockProviders) GetSummary(ctx context.Context) (finance.Summary, error) {
	m.financeCalls++
	return m.finance, nil
}

type inventoryMock struct{ summary inventory.Summary }

func (m *inventoryMock) GetSummary(ctx context.Context) (inventory.Summary, error) {
	return m.summary, nil
}

type membersMock struct {
	summary   members.Summary
	lastMonth shared.ReferenceMonth
}

func (m *membersMock) GetSummary(ctx context.Context, month shared.ReferenceMonth) (members.Summary, error) {
	m.lastMonth = month
	return m.summary, nil
}

func newTestService(t *testing.T, fin *mockProviders, inv *inventoryMock, mem *membersMock) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(fin, inv, mem, NewCache(client, time.Minute))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOverviewCombinesSummaries(t *testing.T) {
	fin := &mockProviders{finance: finance.Summary{
		Revenues: dec("500.00"),
		Expenses: dec("120.50"),
		Balance:  dec("379.50"),
	}}
	inv := &inventoryMock{summary: inventory.Summary{Count: 3, LowStockCount: 1, TotalValue: dec("90.00")}}
	mem := &membersMock{summary: members.Summary{Count: 4, DelinquentCount: 1, AdherencePercent: dec("75")}}
	svc := newTestService(t, fin, inv, mem)

	out, err := svc.Overview(context.Background(), shared.ReferenceMonth("2024-05"))
	require.NoError(t, err)
	require.True(t, out.Finance.Balance.Equal(dec("379.50")))
	require.Equal(t, 1, out.Inventory.LowStockCount)
	require.Equal(t, 4, out.Members.Count)
	require.Equal(t, shared.ReferenceMonth("2024-05"), mem.lastMonth)
	require.False(t, out.GeneratedAt.IsZero())
}

func TestOverviewCaches(t *testing.T) {
	fin := &mockProviders{finance: finance.Summary{Revenues: dec("10")}}
	inv := &inventoryMock{}
	mem := &membersMock{}
	svc := newTestService(t, fin, inv, mem)
	ctx := context.Background()
	month := shared.ReferenceMonth("2024-05")

	_, err := svc.Overview(ctx, month)
	require.NoError(t, err)
	_, err = svc.Overview(ctx, month)
	require.NoError(t, err)
	require.Equal(t, 1, fin.financeCalls)

	// Another month misses the cache.
	_, err = svc.Overview(ctx, shared.ReferenceMonth("2024-06"))
	require.NoError(t, err)
	require.Equal(t, 2, fin.financeCalls)
}

func TestInvalidateBumpsVersion(t *testing.T) {
	fin := &mockProviders{}
	svc := newTestService(t, fin, &inventoryMock{}, &membersMock{})
	ctx := context.Background()
	month := shared.ReferenceMonth("2024-05")

	_, err := svc.Overview(ctx, month)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Overview(ctx, month)
	require.NoError(t, err)
	require.Equal(t, 2, fin.financeCalls)
}

func TestOverviewWithoutRedis(t *testing.T) {
	fin := &mockProviders{finance: finance.Summary{Revenues: dec("10")}}
	svc := NewService(fin, &inventoryMock{}, &membersMock{}, NewCache(nil, 0))

	_, err := svc.Overview(context.Background(), shared.ReferenceMonth("2024-05"))
	require.NoError(t, err)
	_, err = svc.Overview(context.Background(), shared.ReferenceMonth("2024-05"))
	require.NoError(t, err)
	require.Equal(t, 2, fin.financeCalls)
}
