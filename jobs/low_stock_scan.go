package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
)

// MaterialLister yields the material catalog for scanning.
type MaterialLister interface {
	ListMaterials(ctx context.Context) ([]inventory.Material, error)
}

// LowStockScanJob walks the catalog and reports materials at or below
// their minimum quantity.
type LowStockScanJob struct {
	Materials MaterialLister
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	clock     func() time.Time
}

// NewLowStockScanJob initialises the low stock scan handler.
func NewLowStockScanJob(materials MaterialLister, logger *slog.Logger, metrics *observability.Metrics) *LowStockScanJob {
	return &LowStockScanJob{
		Materials: materials,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the scan.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Materials == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.now()
	logger := j.logger()
	logger.Info("starting low stock scan")

	materials, err := j.Materials.ListMaterials(ctx)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	low := 0
	for _, m := range materials {
		if !m.Active && !payload.IncludeInactive {
			continue
		}
		if !m.IsLowStock() {
			continue
		}
		low++
		logger.Warn("material below minimum",
			slog.Int64("material_id", m.ID),
			slog.String("name", m.Name),
			slog.String("current", m.CurrentQuantity.String()),
			slog.String("minimum", m.MinimumQuantity.String()),
		)
	}
	if j.Metrics != nil {
		j.Metrics.SetLowStock(low)
	}

	logger.Info("completed low stock scan",
		slog.Int("materials", len(materials)),
		slog.Int("low_stock", low),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
