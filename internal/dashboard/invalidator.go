package dashboard

import (
	"context"
	"log/slog"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// AuditInvalidator chains an audit recorder with cache invalidation.
// Every recorded mutation bumps the overview cache version, so the next
// dashboard read recomputes instead of serving a stale summary.
type AuditInvalidator struct {
	next   shared.AuditRecorder
	cache  *Cache
	logger *slog.Logger
}

// NewAuditInvalidator wraps next with cache bumping.
func NewAuditInvalidator(next shared.AuditRecorder, cache *Cache, logger *slog.Logger) *AuditInvalidator {
	return &AuditInvalidator{next: next, cache: cache, logger: logger}
}

// Record implements shared.AuditRecorder.
func (a *AuditInvalidator) Record(ctx context.Context, log shared.AuditLog) error {
	var err error
	if a.next != nil {
		err = a.next.Record(ctx, log)
	}
	if bumpErr := a.cache.Bump(ctx); bumpErr != nil && a.logger != nil {
		a.logger.Warn("dashboard cache bump", slog.Any("error", bumpErr))
	}
	return err
}
