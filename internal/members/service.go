package members

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// TxRepository exposes the transactional operations used when recording
// a payment.
type TxRepository interface {
	GetMemberForUpdate(ctx context.Context, id int64) (Member, error)
	PaymentExists(ctx context.Context, memberID int64, month shared.ReferenceMonth) (bool, error)
	InsertPayment(ctx context.Context, payment DuesPayment) (DuesPayment, error)
}

// RepositoryPort abstracts member persistence for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListActive(ctx context.Context) ([]Member, error)
	Get(ctx context.Context, id int64) (Member, error)
	Create(ctx context.Context, input MemberInput) (Member, error)
	Update(ctx context.Context, id int64, input MemberInput) (Member, error)
	Deactivate(ctx context.Context, id int64) error
	ListPaymentsByMember(ctx context.Context, memberID int64) ([]DuesPayment, error)
	ListPayments(ctx context.Context) ([]DuesPayment, error)
	ListPaymentsByMonth(ctx context.Context, month shared.ReferenceMonth) ([]DuesPayment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// Service coordinates membership and dues operations.
type Service struct {
	repo  RepositoryPort
	audit shared.AuditRecorder
	now   func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit shared.AuditRecorder) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// ListMembers returns all active members.
func (s *Service) ListMembers(ctx context.Context) ([]Member, error) {
	return s.repo.ListActive(ctx)
}

// GetMember fetches one member.
func (s *Service) GetMember(ctx context.Context, id int64) (Member, error) {
	return s.repo.Get(ctx, id)
}

// CreateMember validates and stores a new member.
func (s *Service) CreateMember(ctx context.Context, input MemberInput) (Member, error) {
	if input.MonthlyDueAmount.IsNegative() {
		return Member{}, ErrNegativeDue
	}
	m, err := s.repo.Create(ctx, input)
	if err != nil {
		return Member{}, err
	}
	s.record(ctx, "members:create", m.ID, map[string]any{"name": m.Name})
	return m, nil
}

// UpdateMember validates and replaces a member's fields.
func (s *Service) UpdateMember(ctx context.Context, id int64, input MemberInput) (Member, error) {
	if input.MonthlyDueAmount.IsNegative() {
		return Member{}, ErrNegativeDue
	}
	m, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return Member{}, err
	}
	s.record(ctx, "members:update", id, map[string]any{"name": m.Name})
	return m, nil
}

// DeactivateMember soft-deletes a member; payment history stays intact.
func (s *Service) DeactivateMember(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "members:deactivate", id, nil)
	return nil
}

// RecordPayment appends an immutable dues payment. The member check,
// the duplicate check and the insert run in one transaction with the
// member row locked, so two operators cannot record the same month
// twice. A partial amount is accepted and marks the month as paid.
func (s *Service) RecordPayment(ctx context.Context, input PaymentInput) (DuesPayment, error) {
	if input.AmountPaid.IsNegative() {
		return DuesPayment{}, ErrNegativeAmount
	}
	if !input.ReferenceMonth.Valid() {
		return DuesPayment{}, shared.ErrInvalidReferenceMonth
	}
	if input.PaymentDate.IsZero() {
		input.PaymentDate = s.now().UTC()
	}
	var payment DuesPayment
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.GetMemberForUpdate(ctx, input.MemberID); err != nil {
			return err
		}
		exists, err := tx.PaymentExists(ctx, input.MemberID, input.ReferenceMonth)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: member %d, month %s", ErrDuplicatePayment, input.MemberID, input.ReferenceMonth)
		}
		payment, err = tx.InsertPayment(ctx, DuesPayment{
			MemberID:       input.MemberID,
			ReferenceMonth: input.ReferenceMonth,
			AmountPaid:     input.AmountPaid,
			PaymentDate:    input.PaymentDate,
			Notes:          input.Notes,
			Code:           uuid.NewString(),
		})
		return err
	})
	if err != nil {
		return DuesPayment{}, err
	}
	s.record(ctx, "members:payment", input.MemberID, map[string]any{
		"month":  input.ReferenceMonth.String(),
		"amount": input.AmountPaid.String(),
	})
	return payment, nil
}

// ListPayments returns every recorded payment, newest first.
func (s *Service) ListPayments(ctx context.Context) ([]DuesPayment, error) {
	return s.repo.ListPayments(ctx)
}

// ListMemberPayments returns one member's payment history.
func (s *Service) ListMemberPayments(ctx context.Context, memberID int64) ([]DuesPayment, error) {
	if _, err := s.repo.Get(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentsByMember(ctx, memberID)
}

// DeletePayment removes a payment record after operator confirmation.
func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "members:payment_delete",
			Entity:   "dues_payment",
			EntityID: strconv.FormatInt(id, 10),
		})
	}
	return nil
}

// ListDelinquents returns the active members owing for the month.
func (s *Service) ListDelinquents(ctx context.Context, month shared.ReferenceMonth) ([]Member, error) {
	ms, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPaymentsByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	var out []Member
	for _, m := range ms {
		if IsDelinquent(m, payments, month) {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetSummary aggregates the membership for the month.
func (s *Service) GetSummary(ctx context.Context, month shared.ReferenceMonth) (Summary, error) {
	ms, err := s.repo.ListActive(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("members: load members: %w", err)
	}
	payments, err := s.repo.ListPaymentsByMonth(ctx, month)
	if err != nil {
		return Summary{}, fmt.Errorf("members: load payments: %w", err)
	}
	return Summarize(ms, payments, month), nil
}

func (s *Service) record(ctx context.Context, action string, memberID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "member",
		EntityID: strconv.FormatInt(memberID, 10),
		Meta:     meta,
	})
}
