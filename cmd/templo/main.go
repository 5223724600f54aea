package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Intern-Yago/cabocloPenaBranca/internal/app"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/dashboard"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/finance"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/inventory"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/members"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/observability"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/platform/db"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/products"
	"github.com/Intern-Yago/cabocloPenaBranca/internal/shared"
	"github.com/Intern-Yago/cabocloPenaBranca/jobs"
	"github.com/Intern-Yago/cabocloPenaBranca/migrations"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	if err := db.Migrate(cfg.PGDSN, migrations.FS, "."); err != nil {
		logger.Error("apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	overviewCache := dashboard.NewCache(redisClient, cfg.SummaryCacheTTL)
	audit := dashboard.NewAuditInvalidator(shared.NewSlogAudit(logger), overviewCache, logger)

	financeRepo := finance.NewRepository(pool)
	financeService := finance.NewService(financeRepo, audit)
	financeHandler := finance.NewHandler(logger, financeService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, audit)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	membersRepo := members.NewRepository(pool)
	membersService := members.NewService(membersRepo, audit)
	membersHandler := members.NewHandler(logger, membersService)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	dashboardService := dashboard.NewService(financeService, inventoryService, membersService, overviewCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		FinanceHandler:   financeHandler,
		InventoryHandler: inventoryHandler,
		MembersHandler:   membersHandler,
		ProductsHandler:  productsHandler,
		DashboardHandler: dashboardHandler,
		JobsHandler:      jobsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
