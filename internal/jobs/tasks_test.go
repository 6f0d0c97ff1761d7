package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/jobs"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
	"github.com/ugcforge/escrow-backend/internal/repository/memstore"
)

func seedNotification(t *testing.T) (*memstore.Store, models.Notification) {
	t.Helper()
	store := memstore.New()
	creator := store.SeedUser(models.User{Username: "maker", Email: "c@test", Role: models.RoleCreator})

	var note models.Notification
	err := store.WithTx(context.Background(), func(tx repo.ReleaseTx) error {
		var err error
		note, err = tx.InsertNotification(context.Background(), models.Notification{
			RecipientID: creator.ID,
			Kind:        models.NotificationFundsReleased,
			Status:      models.NotificationPending,
		})
		return err
	})
	require.NoError(t, err)
	return store, note
}

func TestHandleDeliverNotification(t *testing.T) {
	store, note := seedNotification(t)
	h := &jobs.NotificationHandler{
		Notifications: store.Notifications(),
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	task, err := jobs.NewDeliverNotificationTask(note.ID)
	require.NoError(t, err)

	require.NoError(t, h.HandleDeliverNotification(context.Background(), task))

	got, err := store.Notifications().GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationSent, got.Status)
	assert.Equal(t, 1, got.Attempts)

	// Redelivery is a no-op once sent.
	require.NoError(t, h.HandleDeliverNotification(context.Background(), task))
	got, _ = store.Notifications().GetByID(context.Background(), note.ID)
	assert.Equal(t, 1, got.Attempts)
}

func TestHandleDeliverNotificationSkipsUnknown(t *testing.T) {
	store := memstore.New()
	h := &jobs.NotificationHandler{
		Notifications: store.Notifications(),
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	task, err := jobs.NewDeliverNotificationTask("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.ErrorIs(t, h.HandleDeliverNotification(context.Background(), task), asynq.SkipRetry)
}

func TestHandleDeliverNotificationBadPayload(t *testing.T) {
	store := memstore.New()
	h := &jobs.NotificationHandler{
		Notifications: store.Notifications(),
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	task := asynq.NewTask(jobs.TaskTypeDeliverNotification, []byte("{"))
	assert.ErrorIs(t, h.HandleDeliverNotification(context.Background(), task), asynq.SkipRetry)
}
