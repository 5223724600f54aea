package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
)

// DelinquentLister yields the members still owing for a month.
type DelinquentLister interface {
	ListDelinquents(ctx context.Context, month shared.ReferenceMonth) ([]members.Member, error)
}

// DelinquencyDigestJob logs a digest of members without payment for a
// reference month and refreshes the delinquency gauge.
type DelinquencyDigestJob struct {
	Members DelinquentLister
	Logger  *slog.Logger
	Metrics *observability.Metrics
	clock   func() time.Time
}

// NewDelinquencyDigestJob initialises the digest handler.
func NewDelinquencyDigestJob(mem DelinquentLister, logger *slog.Logger, metrics *observability.Metrics) *DelinquencyDigestJob {
	return &DelinquencyDigestJob{
		Members: mem,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the digest.
func (j *DelinquencyDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Members == nil {
		return errors.New("delinquency digest: handler not configured")
	}
	var payload DelinquencyDigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	month := shared.CurrentReferenceMonth(j.now())
	if payload.ReferenceMonth != "" {
		parsed, err := shared.ParseReferenceMonth(payload.ReferenceMonth)
		if err != nil {
			return asynq.SkipRetry
		}
		month = parsed
	}

	logger := j.logger().With(slog.String("reference_month", month.String()))
	logger.Info("starting delinquency digest")

	delinquents, err := j.Members.ListDelinquents(ctx, month)
	if err != nil {
		logger.Error("digest failed", slog.Any("error", err))
		return err
	}

	for _, m := range delinquents {
		logger.Warn("member owes dues",
			slog.Int64("member_id", m.ID),
			slog.String("name", m.Name),
			slog.String("monthly_due", m.MonthlyDueAmount.String()),
		)
	}
	if j.Metrics != nil {
		j.Metrics.SetDelinquents(len(delinquents))
	}

	logger.Info("completed delinquency digest", slog.Int("delinquents", len(delinquents)))
	return nil
}

func (j *DelinquencyDigestJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDelinquencyDigest))
	}
	return slog.Default().With(slog.String("job", TaskDelinquencyDigest))
}

func (j *DelinquencyDigestJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
