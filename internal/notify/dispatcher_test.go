package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/notify"
	"github.com/ugcforge/escrow-backend/internal/worker"
)

// flakyNotifications fails MarkSent a configured number of times before
// succeeding, to exercise the retry loop.
type flakyNotifications struct {
	mu        sync.Mutex
	note      models.Notification
	failTimes int
	attempts  int
	failed    bool
}

func (f *flakyNotifications) GetByID(_ context.Context, id string) (models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.note.ID {
		return models.Notification{}, escrow.ErrNotFound
	}
	return f.note, nil
}

func (f *flakyNotifications) IncAttempts(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	return nil
}

func (f *flakyNotifications) MarkSent(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attempts <= f.failTimes {
		return errors.New("feed unavailable")
	}
	f.note.Status = models.NotificationSent
	return nil
}

func (f *flakyNotifications) MarkFailed(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = true
	return nil
}

func (f *flakyNotifications) snapshot() (models.NotificationStatus, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.note.Status, f.attempts, f.failed
}

func runDispatch(t *testing.T, repo *flakyNotifications) {
	t.Helper()
	pool := worker.NewPool(1)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := notify.NewPoolDispatcher(pool, repo, log)
	d.Dispatch(repo.note)
	pool.Stop() // waits for the delivery goroutine to drain
}

func TestPoolDispatcherDelivers(t *testing.T) {
	repo := &flakyNotifications{note: models.Notification{ID: "n1", Status: models.NotificationPending}}
	runDispatch(t, repo)

	status, attempts, failed := repo.snapshot()
	assert.Equal(t, models.NotificationSent, status)
	assert.Equal(t, 1, attempts)
	assert.False(t, failed)
}

func TestPoolDispatcherRetriesWithBackoff(t *testing.T) {
	repo := &flakyNotifications{
		note:      models.Notification{ID: "n1", Status: models.NotificationPending},
		failTimes: 2,
	}
	start := time.Now()
	runDispatch(t, repo)

	status, attempts, failed := repo.snapshot()
	assert.Equal(t, models.NotificationSent, status)
	assert.Equal(t, 3, attempts)
	assert.False(t, failed)
	// Two retries with growing backoff must have slept at least once.
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestPoolDispatcherGivesUp(t *testing.T) {
	repo := &flakyNotifications{
		note:      models.Notification{ID: "n1", Status: models.NotificationPending},
		failTimes: 100,
	}
	runDispatch(t, repo)

	status, _, failed := repo.snapshot()
	assert.NotEqual(t, models.NotificationSent, status)
	assert.True(t, failed)
}
