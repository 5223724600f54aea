package finance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// RepositoryPort abstracts transaction persistence for the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Transaction, error)
	Get(ctx context.Context, id int64) (Transaction, error)
	Create(ctx context.Context, input TransactionInput) (Transaction, error)
	Update(ctx context.Context, id int64, input TransactionInput) (Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// Service coordinates financial transaction operations.
type Service struct {
	repo  RepositoryPort
	audit shared.AuditRecorder
	now   func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit shared.AuditRecorder) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// List returns all transactions, newest first.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

// Get fetches one transaction.
func (s *Service) Get(ctx context.Context, id int64) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new transaction.
func (s *Service) Create(ctx context.Context, input TransactionInput) (Transaction, error) {
	if err := s.validate(&input); err != nil {
		return Transaction{}, err
	}
	tx, err := s.repo.Create(ctx, input)
	if err != nil {
		return Transaction{}, err
	}
	s.record(ctx, "finance:create", tx)
	return tx, nil
}

// Update validates and replaces an existing transaction.
func (s *Service) Update(ctx context.Context, id int64, input TransactionInput) (Transaction, error) {
	if err := s.validate(&input); err != nil {
		return Transaction{}, err
	}
	tx, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return Transaction{}, err
	}
	s.record(ctx, "finance:update", tx)
	return tx, nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "finance:delete",
			Entity:   "transaction",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}

// GetSummary loads every transaction and aggregates it.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("finance: load transactions: %w", err)
	}
	return Summarize(txs), nil
}

func (s *Service) validate(input *TransactionInput) error {
	if !input.Kind.Valid() {
		return ErrInvalidKind
	}
	if input.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if input.Date.IsZero() {
		input.Date = s.now().UTC()
	}
	return nil
}

func (s *Service) record(ctx context.Context, action string, tx Transaction) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "transaction",
		EntityID: strconv.FormatInt(tx.ID, 10),
		Meta: map[string]any{
			"kind":     string(tx.Kind),
			"amount":   tx.Amount.String(),
			"category": tx.Category,
		},
	})
}
