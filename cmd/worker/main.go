package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/app"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/db"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
	"github.com/Intern-Yago/cabocloPenaBranca/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	audit := shared.NewSlogAudit(logger)
	inventoryService := inventory.NewService(inventory.NewRepository(pool), audit)
	membersService := members.NewService(members.NewRepository(pool), audit)
	metrics := observability.NewMetrics()

	lowStockJob := jobs.NewLowStockScanJob(inventoryService, logger, metrics)
	digestJob := jobs.NewDelinquencyDigestJob(membersService, logger, metrics)

	lowStockTask, err := jobs.NewLowStockScanTask(jobs.LowStockScanPayload{})
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	digestTask, err := jobs.NewDelinquencyDigestTask(jobs.DelinquencyDigestPayload{})
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: lowStockJob.Handle},
			{Type: jobs.TaskDelinquencyDigest, Handler: digestJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LowStockScanCron, Task: lowStockTask},
			{Spec: cfg.DuesDigestCron, Task: digestTask},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
