package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ugcforge/escrow-backend/internal/api"
	"github.com/ugcforge/escrow-backend/internal/api/handlers"
	"github.com/ugcforge/escrow-backend/internal/auth"
	"github.com/ugcforge/escrow-backend/internal/cache"
	"github.com/ugcforge/escrow-backend/internal/config"
	"github.com/ugcforge/escrow-backend/internal/db"
	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/logger"
	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/middleware"
	"github.com/ugcforge/escrow-backend/internal/notify"
	"github.com/ugcforge/escrow-backend/internal/repository/postgres"
	"github.com/ugcforge/escrow-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.AppEnv)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The balance cache is an optimization; the service runs
		// without it.
		log.Warn("redis unavailable, balance cache disabled", "err", err)
		redisClient = nil
	}

	repos := postgres.NewRepositories(pool)
	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	balanceSvc := services.NewBalanceService(repos.Balances, repos.Ledger, redisClient, log)
	dispatcher := notify.NewAsynqDispatcher(cfg.RedisAddr, log)
	defer func() { _ = dispatcher.Close() }()

	engine := escrow.NewEngine(repos.Release, dispatcher, balanceSvc, log)
	checker := escrow.NewChecker(repos.Submissions, repos.Campaigns, repos.Balances)
	submissionSvc := services.NewSubmissionService(repos.Submissions, repos.Campaigns, repos.AuditLogs)
	userSvc := services.NewUserService(repos.Users, tm)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		Auth:        middleware.NewAuthMiddleware(tm),
		AuthHandler: handlers.NewAuthHandler(userSvc),
		Campaigns:   handlers.NewCampaignsHandler(repos.Campaigns),
		Submissions: handlers.NewSubmissionsHandler(engine, checker, submissionSvc),
		Balances:    handlers.NewBalancesHandler(balanceSvc, engine),
		Webhooks:    handlers.NewWebhooksHandler(engine),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
