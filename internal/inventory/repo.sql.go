package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

// Repository persists materials and the stock ledger in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

const materialColumns = `id, name, COALESCE(description, ''), category, COALESCE(subcategory, ''),
	unit_of_measure, unit_price::text, current_quantity::text, minimum_quantity::text,
	COALESCE(supplier, ''), COALESCE(storage_location, ''), COALESCE(notes, ''),
	active, created_at, updated_at`

func scanMaterial(row pgx.Row) (Material, error) {
	var (
		m                    Material
		price, current, minn string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Subcategory,
		&m.UnitOfMeasure, &price, &current, &minn,
		&m.Supplier, &m.StorageLocation, &m.Notes,
		&m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Material{}, err
	}
	if m.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return Material{}, fmt.Errorf("inventory: parse unit price: %w", err)
	}
	if m.CurrentQuantity, err = decimal.NewFromString(current); err != nil {
		return Material{}, fmt.Errorf("inventory: parse current quantity: %w", err)
	}
	if m.MinimumQuantity, err = decimal.NewFromString(minn); err != nil {
		return Material{}, fmt.Errorf("inventory: parse minimum quantity: %w", err)
	}
	return m, nil
}

// ListActive returns active materials ordered by category then name.
func (r *Repository) ListActive(ctx context.Context) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+materialColumns+` FROM materials WHERE active ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Get fetches one material by id.
func (r *Repository) Get(ctx context.Context, id int64) (Material, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
	m, err := scanMaterial(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, fmt.Errorf("inventory: material %d: %w", id, httpx.ErrNotFound)
	}
	return m, err
}

// Update replaces the descriptive fields of a material.
func (r *Repository) Update(ctx context.Context, id int64, input MaterialInput) (Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials
		SET name = $2, description = NULLIF($3, ''), category = $4, subcategory = NULLIF($5, ''),
		    unit_of_measure = $6, unit_price = $7::numeric, minimum_quantity = $8::numeric,
		    supplier = NULLIF($9, ''), storage_location = NULLIF($10, ''), notes = NULLIF($11, ''),
		    updated_at = now()
		WHERE id = $1 AND active
		RETURNING `+materialColumns,
		id, input.Name, input.Description, input.Category, input.Subcategory,
		input.UnitOfMeasure, input.UnitPrice.String(), input.MinimumQuantity.String(),
		input.Supplier, input.StorageLocation, input.Notes)
	m, err := scanMaterial(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, fmt.Errorf("inventory: material %d: %w", id, httpx.ErrNotFound)
	}
	return m, err
}

// Deactivate soft-deletes a material.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE materials SET active = false, updated_at = now() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory: material %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

const movementColumns = `id, material_id, kind, quantity::text, reason, COALESCE(notes, ''), code, occurred_at, created_at`

func scanMovement(row pgx.Row) (StockMovement, error) {
	var (
		mv  StockMovement
		qty string
	)
	err := row.Scan(&mv.ID, &mv.MaterialID, &mv.Kind, &qty, &mv.Reason, &mv.Notes, &mv.Code, &mv.OccurredAt, &mv.CreatedAt)
	if err != nil {
		return StockMovement{}, err
	}
	if mv.Quantity, err = decimal.NewFromString(qty); err != nil {
		return StockMovement{}, fmt.Errorf("inventory: parse movement quantity: %w", err)
	}
	return mv, nil
}

// ListMovementsByMaterial returns the ledger of one material, newest first.
func (r *Repository) ListMovementsByMaterial(ctx context.Context, materialID int64) ([]StockMovement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE material_id = $1 ORDER BY occurred_at DESC, id DESC`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListRecentMovements returns the latest entries across all materials.
func (r *Repository) ListRecentMovements(ctx context.Context, limit int) ([]StockMovement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+movementColumns+` FROM stock_movements ORDER BY occurred_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]StockMovement, error) {
	var movements []StockMovement
	for rows.Next() {
		mv, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, mv)
	}
	return movements, rows.Err()
}

// InsertMaterial inserts a material with its initial quantity.
func (t *txRepository) InsertMaterial(ctx context.Context, input MaterialInput) (Material, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO materials (name, description, category, subcategory, unit_of_measure,
			unit_price, current_quantity, minimum_quantity, supplier, storage_location, notes)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6::numeric, $7::numeric, $8::numeric,
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''))
		RETURNING `+materialColumns,
		input.Name, input.Description, input.Category, input.Subcategory, input.UnitOfMeasure,
		input.UnitPrice.String(), input.InitialQuantity.String(), input.MinimumQuantity.String(),
		input.Supplier, input.StorageLocation, input.Notes)
	return scanMaterial(row)
}

// GetMaterialForUpdate locks the material row for the movement check.
func (t *txRepository) GetMaterialForUpdate(ctx context.Context, id int64) (Material, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 AND active FOR UPDATE`, id)
	m, err := scanMaterial(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, fmt.Errorf("inventory: material %d: %w", id, httpx.ErrNotFound)
	}
	return m, err
}

// UpdateMaterialQuantity writes the computed on-hand quantity.
func (t *txRepository) UpdateMaterialQuantity(ctx context.Context, id int64, material Material) error {
	tag, err := t.tx.Exec(ctx, `UPDATE materials SET current_quantity = $2::numeric, updated_at = now() WHERE id = $1`,
		id, material.CurrentQuantity.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory: material %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// InsertMovement appends a ledger entry.
func (t *txRepository) InsertMovement(ctx context.Context, movement StockMovement) (StockMovement, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO stock_movements (material_id, kind, quantity, reason, notes, code, occurred_at)
		VALUES ($1, $2, $3::numeric, $4, NULLIF($5, ''), $6, $7)
		RETURNING `+movementColumns,
		movement.MaterialID, movement.Kind, movement.Quantity.String(), movement.Reason,
		movement.Notes, movement.Code, movement.OccurredAt)
	return scanMovement(row)
}
