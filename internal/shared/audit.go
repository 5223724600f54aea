package shared

import (
	"context"
	"log/slog"
)

// AuditLog captures a user-visible mutation for the operations trail.
type AuditLog struct {
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
}

// AuditRecorder persists audit entries. Implementations must never fail
// the calling operation; errors are the recorder's problem.
type AuditRecorder interface {
	Record(ctx context.Context, log AuditLog) error
}

// SlogAudit writes audit entries to the structured log.
type SlogAudit struct {
	logger *slog.Logger
}

// NewSlogAudit builds a log-backed audit recorder.
func NewSlogAudit(logger *slog.Logger) *SlogAudit {
	return &SlogAudit{logger: logger}
}

// Record implements AuditRecorder.
func (a *SlogAudit) Record(ctx context.Context, log AuditLog) error {
	if a == nil || a.logger == nil {
		return nil
	}
	a.logger.InfoContext(ctx, "audit",
		slog.String("action", log.Action),
		slog.String("entity", log.Entity),
		slog.String("entity_id", log.EntityID),
		slog.Any("meta", log.Meta),
	)
	return nil
}
