package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

// PgRepository persists products in PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const productColumns = `id, name, COALESCE(description, ''), code, price::text, quantity, category, COALESCE(supplier, ''), created_at, updated_at`

const uniqueViolation = "23505"

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Code, &price, &p.Quantity, &p.Category, &p.Supplier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return Product{}, fmt.Errorf("products: parse price: %w", err)
	}
	return p, nil
}

func mapProductError(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("products: product %d: %w", id, httpx.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("products: code already in use: %w", httpx.ErrDuplicate)
	}
	return err
}

// List returns all products ordered by name.
func (r *PgRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

// Get fetches one product by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, mapProductError(err, id)
	}
	return p, nil
}

// Create inserts a new product.
func (r *PgRepository) Create(ctx context.Context, product Product) (Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, code, price, quantity, category, supplier)
		VALUES ($1, NULLIF($2, ''), $3, $4::numeric, $5, $6, NULLIF($7, ''))
		RETURNING `+productColumns,
		product.Name, product.Description, product.Code, product.Price.String(),
		product.Quantity, product.Category, product.Supplier)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, mapProductError(err, 0)
	}
	return p, nil
}

// Update replaces an existing product.
func (r *PgRepository) Update(ctx context.Context, id int64, product Product) (Product, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = NULLIF($3, ''), code = $4, price = $5::numeric,
		    quantity = $6, category = $7, supplier = NULLIF($8, ''), updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, product.Name, product.Description, product.Code, product.Price.String(),
		product.Quantity, product.Category, product.Supplier)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, mapProductError(err, id)
	}
	return p, nil
}

// SetQuantity replaces the on-hand quantity.
func (r *PgRepository) SetQuantity(ctx context.Context, id int64, quantity int) (Product, error) {
	row := r.pool.QueryRow(ctx, `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1 RETURNING `+productColumns, id, quantity)
	p, err := scanProduct(row)
	if err != nil {
		return Product{}, mapProductError(err, id)
	}
	return p, nil
}

// Delete removes a product by id.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("products: product %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
