package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/httpx"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// Repository persists members and dues payments in PostgreSQL.
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
		return errors.New("members repository not initialised")
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

const memberColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''),
	birth_date, join_date, monthly_due_amount::text, active, COALESCE(notes, ''), created_at, updated_at`

func scanMember(row pgx.Row) (Member, error) {
	var (
		m   Member
		due string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Address,
		&m.BirthDate, &m.JoinDate, &due, &m.Active, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Member{}, err
	}
	if m.MonthlyDueAmount, err = decimal.NewFromString(due); err != nil {
		return Member{}, fmt.Errorf("members: parse due amount: %w", err)
	}
	return m, nil
}

// ListActive returns active members ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM members WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// Get fetches one member by id.
func (r *Repository) Get(ctx context.Context, id int64) (Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, fmt.Errorf("members: member %d: %w", id, httpx.ErrNotFound)
	}
	return m, err
}

// Create inserts a new member.
func (r *Repository) Create(ctx context.Context, input MemberInput) (Member, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (name, phone, email, address, birth_date, monthly_due_amount, notes)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6::numeric, NULLIF($7, ''))
		RETURNING `+memberColumns,
		input.Name, input.Phone, input.Email, input.Address, input.BirthDate,
		input.MonthlyDueAmount.String(), input.Notes)
	return scanMember(row)
}

// Update replaces the mutable fields of a member.
func (r *Repository) Update(ctx context.Context, id int64, input MemberInput) (Member, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE members
		SET name = $2, phone = NULLIF($3, ''), email = NULLIF($4, ''), address = NULLIF($5, ''),
		    birth_date = $6, monthly_due_amount = $7::numeric, notes = NULLIF($8, ''), updated_at = now()
		WHERE id = $1 AND active
		RETURNING `+memberColumns,
		id, input.Name, input.Phone, input.Email, input.Address, input.BirthDate,
		input.MonthlyDueAmount.String(), input.Notes)
	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, fmt.Errorf("members: member %d: %w", id, httpx.ErrNotFound)
	}
	return m, err
}

// Deactivate soft-deletes a member.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE members SET active = false, updated_at = now() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("members: member %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

const paymentColumns = `id, member_id, reference_month, amount_paid::text, payment_date, COALESCE(notes, ''), code, created_at`

func scanPayment(row pgx.Row) (DuesPayment, error) {
	var (
		p      DuesPayment
		amount string
	)
	err := row.Scan(&p.ID, &p.MemberID, &p.ReferenceMonth, &amount, &p.PaymentDate, &p.Notes, &p.Code, &p.CreatedAt)
	if err != nil {
		return DuesPayment{}, err
	}
	if p.AmountPaid, err = decimal.NewFromString(amount); err != nil {
		return DuesPayment{}, fmt.Errorf("members: parse amount paid: %w", err)
	}
	return p, nil
}

func collectPayments(rows pgx.Rows) ([]DuesPayment, error) {
	var payments []DuesPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListPayments returns every payment, newest first.
func (r *Repository) ListPayments(ctx context.Context) ([]DuesPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM dues_payments ORDER BY payment_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListPaymentsByMember returns one member's payments by reference month.
func (r *Repository) ListPaymentsByMember(ctx context.Context, memberID int64) ([]DuesPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM dues_payments WHERE member_id = $1 ORDER BY reference_month DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListPaymentsByMonth returns all payments for a reference month.
func (r *Repository) ListPaymentsByMonth(ctx context.Context, month shared.ReferenceMonth) ([]DuesPayment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM dues_payments WHERE reference_month = $1`, month.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// DeletePayment removes a payment by id.
func (r *Repository) DeletePayment(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dues_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("members: payment %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// GetMemberForUpdate locks the member row for the payment check.
func (t *txRepository) GetMemberForUpdate(ctx context.Context, id int64) (Member, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1 AND active FOR UPDATE`, id)
	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, fmt.Errorf("members: member %d: %w", id, ErrUnknownMember)
	}
	return m, err
}

// PaymentExists reports whether a payment is already recorded for the
// member and month.
func (t *txRepository) PaymentExists(ctx context.Context, memberID int64, month shared.ReferenceMonth) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dues_payments WHERE member_id = $1 AND reference_month = $2)`,
		memberID, month.String()).Scan(&exists)
	return exists, err
}

// InsertPayment appends a payment record.
func (t *txRepository) InsertPayment(ctx context.Context, payment DuesPayment) (DuesPayment, error) {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO dues_payments (member_id, reference_month, amount_paid, payment_date, notes, code)
		VALUES ($1, $2, $3::numeric, $4, NULLIF($5, ''), $6)
		RETURNING `+paymentColumns,
		payment.MemberID, payment.ReferenceMonth.String(), payment.AmountPaid.String(),
		payment.PaymentDate, payment.Notes, payment.Code)
	return scanPayment(row)
}
