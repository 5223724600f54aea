package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
)

// Repository persists transactions in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const transactionColumns = `id, description, amount::text, kind, category, COALESCE(subcategory, ''), member_id, date, created_at`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		tx        Transaction
		amountRaw string
	)
	err := row.Scan(&tx.ID, &tx.Description, &amountRaw, &tx.Kind, &tx.Category, &tx.Subcategory, &tx.MemberID, &tx.Date, &tx.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}
	tx.Amount, err = decimal.NewFromString(amountRaw)
	if err != nil {
		return Transaction{}, fmt.Errorf("finance: parse amount: %w", err)
	}
	return tx, nil
}

// List returns all transactions ordered by date descending.
func (r *Repository) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Get fetches a single transaction by id.
func (r *Repository) Get(ctx context.Context, id int64) (Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, fmt.Errorf("finance: transaction %d: %w", id, httpx.ErrNotFound)
	}
	return tx, err
}

// Create inserts a new transaction.
func (r *Repository) Create(ctx context.Context, input TransactionInput) (Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (description, amount, kind, category, subcategory, member_id, date)
		VALUES ($1, $2::numeric, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING `+transactionColumns,
		input.Description, input.Amount.String(), input.Kind, input.Category, input.Subcategory, input.MemberID, input.Date)
	return scanTransaction(row)
}

// Update replaces the mutable fields of a transaction.
func (r *Repository) Update(ctx context.Context, id int64, input TransactionInput) (Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET description = $2, amount = $3::numeric, kind = $4, category = $5,
		    subcategory = NULLIF($6, ''), member_id = $7, date = $8
		WHERE id = $1
		RETURNING `+transactionColumns,
		id, input.Description, input.Amount.String(), input.Kind, input.Category, input.Subcategory, input.MemberID, input.Date)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, fmt.Errorf("finance: transaction %d: %w", id, httpx.ErrNotFound)
	}
	return tx, err
}

// Delete removes a transaction by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finance: transaction %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
