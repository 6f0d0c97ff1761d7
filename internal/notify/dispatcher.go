// Package notify decouples notification delivery from the financial
// commit. Dispatchers are fire-and-forget: they retry on their own
// schedule and never surface delivery failures to the release path.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ugcforge/escrow-backend/internal/jobs"
	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
	"github.com/ugcforge/escrow-backend/internal/worker"
)

// AsynqDispatcher enqueues delivery tasks for the worker binary. Retry and
// backoff live in asynq.
type AsynqDispatcher struct {
	client *asynq.Client
	log    *slog.Logger
}

func NewAsynqDispatcher(redisAddr string, log *slog.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		log:    log,
	}
}

func (d *AsynqDispatcher) Dispatch(n models.Notification) {
	task, err := jobs.NewDeliverNotificationTask(n.ID)
	if err != nil {
		d.log.Error("notification task build", "err", err, "notification_id", n.ID)
		return
	}
	if _, err := d.client.Enqueue(task); err != nil {
		// The row is still pending in the store; a sweep or a manual
		// re-enqueue picks it up. Losing the enqueue never unwinds the
		// release.
		d.log.Error("notification enqueue", "err", err, "notification_id", n.ID)
	}
}

func (d *AsynqDispatcher) Close() error { return d.client.Close() }

// PoolDispatcher delivers in-process through the bounded worker pool, with
// its own retry/backoff loop. Used in dev and tests where no redis runs.
type PoolDispatcher struct {
	pool          *worker.Pool
	notifications repo.Notifications
	log           *slog.Logger
	maxAttempts   int
	backoff       time.Duration
}

func NewPoolDispatcher(p *worker.Pool, n repo.Notifications, log *slog.Logger) *PoolDispatcher {
	return &PoolDispatcher{
		pool:          p,
		notifications: n,
		log:           log,
		maxAttempts:   5,
		backoff:       100 * time.Millisecond,
	}
}

func (d *PoolDispatcher) Dispatch(n models.Notification) {
	d.pool.Submit(func() { d.deliver(n.ID) })
}

func (d *PoolDispatcher) deliver(id string) {
	ctx := context.Background()
	for attempt := 1; ; attempt++ {
		err := d.attempt(ctx, id)
		if err == nil {
			metrics.NotificationsSent.Inc()
			return
		}
		if attempt >= d.maxAttempts {
			_ = d.notifications.MarkFailed(ctx, id)
			d.log.Error("notification delivery gave up", "notification_id", id, "attempts", attempt, "err", err)
			return
		}
		metrics.NotificationsRetried.Inc()
		time.Sleep(d.backoff * time.Duration(attempt))
	}
}

func (d *PoolDispatcher) attempt(ctx context.Context, id string) error {
	n, err := d.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.Status == models.NotificationSent {
		return nil
	}
	if err := d.notifications.IncAttempts(ctx, id); err != nil {
		return err
	}
	return d.notifications.MarkSent(ctx, id)
}
