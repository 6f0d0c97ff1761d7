package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ugcforge/escrow-backend/internal/config"
	"github.com/ugcforge/escrow-backend/internal/db"
	"github.com/ugcforge/escrow-backend/internal/jobs"
	"github.com/ugcforge/escrow-backend/internal/logger"
	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/repository/postgres"
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

	metrics.Init()
	repos := postgres.NewRepositories(pool)
	srv, mux := jobs.NewServer(cfg.RedisAddr, cfg.WorkerConcurrency, repos.Notifications, log)

	go func() {
		log.Info("worker starting", "redis", cfg.RedisAddr, "concurrency", cfg.WorkerConcurrency)
		if err := srv.Run(mux); err != nil {
			log.Error("worker", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("worker shutting down...")
	srv.Shutdown()
}
