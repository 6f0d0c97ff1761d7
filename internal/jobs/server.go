package jobs

import (
	"log/slog"

	"github.com/hibiken/asynq"

	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

// NewServer builds the asynq consumer for cmd/worker.
func NewServer(redisAddr string, concurrency int, notifications repo.Notifications, log *slog.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{QueueDefault: 1},
		},
	)
	h := &NotificationHandler{Notifications: notifications, Log: log}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeDeliverNotification, h.HandleDeliverNotification)
	return srv, mux
}
