package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/finance"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// FinanceProvider yields the financial summary.
type FinanceProvider interface {
	GetSummary(ctx context.Context) (finance.Summary, error)
}

// InventoryProvider yields the stock summary.
type InventoryProvider interface {
	GetSummary(ctx context.Context) (inventory.Summary, error)
}

// MembersProvider yields the membership summary for a reference month.
type MembersProvider interface {
	GetSummary(ctx context.Context, month shared.ReferenceMonth) (members.Summary, error)
}

// Overview bundles the three summaries the admin screen opens with.
type Overview struct {
	Finance     finance.Summary   `json:"finance"`
	Inventory   inventory.Summary `json:"inventory"`
	Members     members.Summary   `json:"members"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Service coordinates summary execution with the cache layer.
type Service struct {
	finance   FinanceProvider
	inventory InventoryProvider
	members   MembersProvider
	cache     *Cache
	now       func() time.Time
}

// NewService wires the three summary providers with a Cache helper.
func NewService(fin FinanceProvider, inv InventoryProvider, mem MembersProvider, cache *Cache) *Service {
	return &Service{finance: fin, inventory: inv, members: mem, cache: cache, now: time.Now}
}

// Overview computes the combined dashboard for a reference month,
// serving from cache when a fresh copy exists.
func (s *Service) Overview(ctx context.Context, month shared.ReferenceMonth) (Overview, error) {
	key, err := s.cache.BuildKey(ctx, "dashboard", "overview", month.String())
	if err != nil {
		return Overview{}, err
	}
	var out Overview
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, month)
	})
	return out, err
}

// Invalidate retires every cached overview. Handlers call it after a
// write so the next dashboard read reflects the change.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) compute(ctx context.Context, month shared.ReferenceMonth) (Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.finance.GetSummary(ctx)
		if err != nil {
			return err
		}
		out.Finance = sum
		return nil
	})
	g.Go(func() error {
		sum, err := s.inventory.GetSummary(ctx)
		if err != nil {
			return err
		}
		out.Inventory = sum
		return nil
	})
	g.Go(func() error {
		sum, err := s.members.GetSummary(ctx, month)
		if err != nil {
			return err
		}
		out.Members = sum
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	out.GeneratedAt = s.now().UTC()
	return out, nil
}
