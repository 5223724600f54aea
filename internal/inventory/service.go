package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// TxRepository exposes the transactional operations used by the service.
type TxRepository interface {
	InsertMaterial(ctx context.Context, input MaterialInput) (Material, error)
	GetMaterialForUpdate(ctx context.Context, id int64) (Material, error)
	UpdateMaterialQuantity(ctx context.Context, id int64, material Material) error
	InsertMovement(ctx context.Context, movement StockMovement) (StockMovement, error)
}

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListActive(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, id int64) (Material, error)
	Update(ctx context.Context, id int64, input MaterialInput) (Material, error)
	Deactivate(ctx context.Context, id int64) error
	ListMovementsByMaterial(ctx context.Context, materialID int64) ([]StockMovement, error)
	ListRecentMovements(ctx context.Context, limit int) ([]StockMovement, error)
}

// Service coordinates material and stock ledger operations.
type Service struct {
	repo  RepositoryPort
	audit shared.AuditRecorder
	now   func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit shared.AuditRecorder) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// InitialStockReason is recorded on the movement created together with
// a material that starts with quantity above zero.
const InitialStockReason = "Estoque inicial"

// ListMaterials returns all active materials.
func (s *Service) ListMaterials(ctx context.Context) ([]Material, error) {
	return s.repo.ListActive(ctx)
}

// GetMaterial fetches one material.
func (s *Service) GetMaterial(ctx context.Context, id int64) (Material, error) {
	return s.repo.Get(ctx, id)
}

// CreateMaterial stores a new material. When the initial quantity is
// above zero an inbound ledger entry is recorded in the same
// transaction, so material and ledger can never disagree.
func (s *Service) CreateMaterial(ctx context.Context, input MaterialInput) (Material, error) {
	if err := validateMaterial(&input); err != nil {
		return Material{}, err
	}
	var created Material
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		m, err := tx.InsertMaterial(ctx, input)
		if err != nil {
			return err
		}
		if input.InitialQuantity.IsPositive() {
			_, err = tx.InsertMovement(ctx, StockMovement{
				MaterialID: m.ID,
				Kind:       MovementIn,
				Quantity:   input.InitialQuantity,
				Reason:     InitialStockReason,
				Code:       uuid.NewString(),
				OccurredAt: s.now().UTC(),
			})
			if err != nil {
				return err
			}
		}
		created = m
		return nil
	})
	if err != nil {
		return Material{}, err
	}
	s.record(ctx, "inventory:create", created.ID, map[string]any{"name": created.Name})
	return created, nil
}

// UpdateMaterial replaces the descriptive fields of a material. The
// on-hand quantity only changes through movements.
func (s *Service) UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (Material, error) {
	if err := validateMaterial(&input); err != nil {
		return Material{}, err
	}
	m, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return Material{}, err
	}
	s.record(ctx, "inventory:update", id, map[string]any{"name": m.Name})
	return m, nil
}

// DeactivateMaterial soft-deletes a material; its ledger stays intact.
func (s *Service) DeactivateMaterial(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "inventory:deactivate", id, nil)
	return nil
}

// PostMovement applies a movement to a material. The stock rule check,
// the ledger append and the quantity update run in a single
// repeatable-read transaction with the material row locked, so a failed
// movement leaves no trace and concurrent operators cannot lose updates.
func (s *Service) PostMovement(ctx context.Context, materialID int64, input MovementInput) (Material, StockMovement, error) {
	if !input.Kind.Valid() {
		return Material{}, StockMovement{}, ErrInvalidKind
	}
	var (
		material Material
		movement StockMovement
	)
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		m, err := tx.GetMaterialForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		next, err := NextQuantity(m.CurrentQuantity, input.Kind, input.Quantity)
		if err != nil {
			return err
		}
		mv := StockMovement{
			MaterialID: materialID,
			Kind:       input.Kind,
			Quantity:   input.Quantity,
			Reason:     input.Reason,
			Notes:      input.Notes,
			Code:       uuid.NewString(),
			OccurredAt: s.now().UTC(),
		}
		movement, err = tx.InsertMovement(ctx, mv)
		if err != nil {
			return err
		}
		m.CurrentQuantity = next
		if err := tx.UpdateMaterialQuantity(ctx, materialID, m); err != nil {
			return err
		}
		material = m
		return nil
	})
	if err != nil {
		return Material{}, StockMovement{}, err
	}
	s.record(ctx, fmt.Sprintf("inventory:%s", input.Kind), materialID, map[string]any{
		"quantity": input.Quantity.String(),
		"reason":   input.Reason,
	})
	return material, movement, nil
}

// ListMovements returns the ledger of one material, newest first.
func (s *Service) ListMovements(ctx context.Context, materialID int64) ([]StockMovement, error) {
	if _, err := s.repo.Get(ctx, materialID); err != nil {
		return nil, err
	}
	return s.repo.ListMovementsByMaterial(ctx, materialID)
}

// ListRecentMovements returns the latest ledger entries across materials.
func (s *Service) ListRecentMovements(ctx context.Context, limit int) ([]StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecentMovements(ctx, limit)
}

// GetSummary aggregates the active materials.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	materials, err := s.repo.ListActive(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("inventory: load materials: %w", err)
	}
	return Summarize(materials), nil
}

func validateMaterial(input *MaterialInput) error {
	if input.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if input.InitialQuantity.IsNegative() || input.MinimumQuantity.IsNegative() {
		return ErrInvalidQuantity
	}
	if input.UnitOfMeasure == "" {
		input.UnitOfMeasure = "unidade"
	}
	return nil
}

func (s *Service) record(ctx context.Context, action string, materialID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "material",
		EntityID: strconv.FormatInt(materialID, 10),
		Meta:     meta,
	})
}

// IsRuleViolation reports whether an error is a domain rule failure
// rather than a store problem.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrInsufficientStock)
}
