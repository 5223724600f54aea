package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	txs    map[int64]Transaction
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{txs: make(map[int64]Transaction)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Transaction, error) {
	out := make([]Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		out = append(out, tx)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Transaction, error) {
	return r.txs[id], nil
}

func (r *memoryRepo) Create(ctx context.Context, input TransactionInput) (Transaction, error) {
	r.nextID++
	tx := Transaction{
		ID:          r.nextID,
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		MemberID:    input.MemberID,
		Date:        input.Date,
		CreatedAt:   time.Now(),
	}
	r.txs[tx.ID] = tx
	return tx, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, input TransactionInput) (Transaction, error) {
	tx := r.txs[id]
	tx.Description = input.Description
	tx.Amount = input.Amount
	tx.Kind = input.Kind
	tx.Category = input.Category
	r.txs[id] = tx
	return tx, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	delete(r.txs, id)
	return nil
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.Create(context.Background(), TransactionInput{Kind: "transfer", Amount: dec("10")})
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.Create(context.Background(), TransactionInput{Kind: KindExpense, Amount: dec("-1")})
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCreateDefaultsDate(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	tx, err := svc.Create(context.Background(), TransactionInput{
		Description: "Doação anônima",
		Kind:        KindRevenue,
		Category:    "Doações",
		Amount:      dec("25.00"),
	})
	require.NoError(t, err)
	require.False(t, tx.Date.IsZero())
}

func TestGetSummaryAggregatesStore(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, TransactionInput{Description: "Mensalidade", Kind: KindRevenue, Category: "Mensalidades", Amount: dec("100.00")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, TransactionInput{Description: "Velas", Kind: KindExpense, Category: "Materiais Religiosos", Amount: dec("37.50")})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.True(t, dec("62.50").Equal(summary.Balance), "balance = %s", summary.Balance)
}
