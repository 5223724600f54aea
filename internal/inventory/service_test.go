package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

type memoryRepo struct {
	materials  map[int64]Material
	movements  []StockMovement
	nextID     int64
	nextMoveID int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{materials: make(map[int64]Material)}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	// Snapshot so a failing callback rolls back, mirroring the SQL
	// transaction the real repository runs.
	materials := make(map[int64]Material, len(r.materials))
	for id, m := range r.materials {
		materials[id] = m
	}
	movements := make([]StockMovement, len(r.movements))
	copy(movements, r.movements)

	if err := fn(ctx, &memoryTx{repo: r}); err != nil {
		r.materials = materials
		r.movements = movements
		return err
	}
	return nil
}

func (r *memoryRepo) ListActive(ctx context.Context) ([]Material, error) {
	var out []Material
	for _, m := range r.materials {
		if m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material %d: %w", id, httpx.ErrNotFound)
	}
	return m, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, input MaterialInput) (Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return Material{}, httpx.ErrNotFound
	}
	m.Name = input.Name
	m.Category = input.Category
	m.UnitPrice = input.UnitPrice
	m.MinimumQuantity = input.MinimumQuantity
	r.materials[id] = m
	return m, nil
}

func (r *memoryRepo) Deactivate(ctx context.Context, id int64) error {
	m, ok := r.materials[id]
	if !ok {
		return httpx.ErrNotFound
	}
	m.Active = false
	r.materials[id] = m
	return nil
}

func (r *memoryRepo) ListMovementsByMaterial(ctx context.Context, materialID int64) ([]StockMovement, error) {
	var out []StockMovement
	for _, mv := range r.movements {
		if mv.MaterialID == materialID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListRecentMovements(ctx context.Context, limit int) ([]StockMovement, error) {
	if len(r.movements) > limit {
		return r.movements[len(r.movements)-limit:], nil
	}
	return r.movements, nil
}

func (tx *memoryTx) InsertMaterial(ctx context.Context, input MaterialInput) (Material, error) {
	tx.repo.nextID++
	m := Material{
		ID:              tx.repo.nextID,
		Name:            input.Name,
		Category:        input.Category,
		UnitOfMeasure:   input.UnitOfMeasure,
		UnitPrice:       input.UnitPrice,
		CurrentQuantity: input.InitialQuantity,
		MinimumQuantity: input.MinimumQuantity,
		Active:          true,
		CreatedAt:       time.Now(),
	}
	tx.repo.materials[m.ID] = m
	return m, nil
}

func (tx *memoryTx) GetMaterialForUpdate(ctx context.Context, id int64) (Material, error) {
	m, ok := tx.repo.materials[id]
	if !ok || !m.Active {
		return Material{}, fmt.Errorf("material %d: %w", id, httpx.ErrNotFound)
	}
	return m, nil
}

func (tx *memoryTx) UpdateMaterialQuantity(ctx context.Context, id int64, material Material) error {
	m, ok := tx.repo.materials[id]
	if !ok {
		return httpx.ErrNotFound
	}
	m.CurrentQuantity = material.CurrentQuantity
	tx.repo.materials[id] = m
	return nil
}

func (tx *memoryTx) InsertMovement(ctx context.Context, movement StockMovement) (StockMovement, error) {
	tx.repo.nextMoveID++
	movement.ID = tx.repo.nextMoveID
	movement.CreatedAt = time.Now()
	tx.repo.movements = append(tx.repo.movements, movement)
	return movement, nil
}

func newTestMaterial(t *testing.T, svc *Service, initial string) Material {
	t.Helper()
	m, err := svc.CreateMaterial(context.Background(), MaterialInput{
		Name:            "Vela Branca",
		Category:        "Velas",
		UnitPrice:       dec("2.50"),
		InitialQuantity: dec(initial),
		MinimumQuantity: dec("5"),
	})
	require.NoError(t, err)
	return m
}

func TestCreateMaterialRecordsInitialStock(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	m := newTestMaterial(t, svc, "12")
	movements, err := svc.ListMovements(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	require.Equal(t, MovementIn, movements[0].Kind)
	require.Equal(t, InitialStockReason, movements[0].Reason)
	require.True(t, dec("12").Equal(movements[0].Quantity))
}

func TestCreateMaterialZeroInitialHasNoMovement(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	m := newTestMaterial(t, svc, "0")
	movements, err := svc.ListMovements(context.Background(), m.ID)
	require.NoError(t, err)
	require.Empty(t, movements)
}

func TestPostMovementOutInsufficientLeavesStateUnchanged(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	m := newTestMaterial(t, svc, "3")

	// Repeated identical failed attempts never mutate state.
	for i := 0; i < 3; i++ {
		_, _, err := svc.PostMovement(ctx, m.ID, MovementInput{Kind: MovementOut, Quantity: dec("4"), Reason: "Gira"})
		require.ErrorIs(t, err, ErrInsufficientStock)

		got, err := svc.GetMaterial(ctx, m.ID)
		require.NoError(t, err)
		require.True(t, dec("3").Equal(got.CurrentQuantity), "attempt %d", i)
	}
	movements, err := svc.ListMovements(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1, "only the initial stock entry")
}

func TestPostMovementRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	m := newTestMaterial(t, svc, "10")

	_, _, err := svc.PostMovement(ctx, m.ID, MovementInput{Kind: MovementIn, Quantity: dec("7"), Reason: "Compra"})
	require.NoError(t, err)
	updated, _, err := svc.PostMovement(ctx, m.ID, MovementInput{Kind: MovementOut, Quantity: dec("7"), Reason: "Gira"})
	require.NoError(t, err)
	require.True(t, dec("10").Equal(updated.CurrentQuantity), "in then equal out restores quantity")

	movements, err := svc.ListMovements(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, movements, 3, "initial + in + out")
}

func TestPostMovementAdjustReplaces(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	m := newTestMaterial(t, svc, "10")
	updated, mv, err := svc.PostMovement(ctx, m.ID, MovementInput{Kind: MovementAdjust, Quantity: dec("2"), Reason: "Contagem"})
	require.NoError(t, err)
	require.True(t, dec("2").Equal(updated.CurrentQuantity))
	require.True(t, dec("2").Equal(mv.Quantity))
	require.NotEmpty(t, mv.Code)
}

func TestPostMovementInvalidQuantityBeforeStockRule(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	m := newTestMaterial(t, svc, "0")
	_, _, err := svc.PostMovement(ctx, m.ID, MovementInput{Kind: MovementOut, Quantity: dec("-1"), Reason: "Gira"})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.NotErrorIs(t, err, ErrInsufficientStock)
}

func TestPostMovementUnknownMaterial(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, _, err := svc.PostMovement(context.Background(), 99, MovementInput{Kind: MovementIn, Quantity: dec("1"), Reason: "Compra"})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeactivateHidesFromSummary(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	m := newTestMaterial(t, svc, "3")
	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	require.Equal(t, 1, summary.LowStockCount)

	require.NoError(t, svc.DeactivateMaterial(ctx, m.ID))
	summary, err = svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Zero(t, summary.Count)
}
