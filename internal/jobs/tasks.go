package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

const (
	QueueDefault = "default"
	// TaskTypeDeliverNotification delivers one committed notification row
	// to its recipient.
	TaskTypeDeliverNotification = "notification:deliver"
)

type DeliverNotificationPayload struct {
	NotificationID string `json:"notification_id"`
}

func NewDeliverNotificationTask(notificationID string) (*asynq.Task, error) {
	data, err := json.Marshal(DeliverNotificationPayload{NotificationID: notificationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeliverNotification, data, asynq.Queue(QueueDefault), asynq.MaxRetry(10)), nil
}

// NotificationHandler processes delivery tasks. Returning an error hands
// the task back to asynq for a retry with backoff, which is where the
// at-least-once guarantee comes from.
type NotificationHandler struct {
	Notifications repo.Notifications
	Log           *slog.Logger
}

func (h *NotificationHandler) HandleDeliverNotification(ctx context.Context, t *asynq.Task) error {
	var payload DeliverNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	n, err := h.Notifications.GetByID(ctx, payload.NotificationID)
	if err != nil {
		if errors.Is(err, escrow.ErrNotFound) {
			return asynq.SkipRetry
		}
		return err
	}
	if n.Status == models.NotificationSent {
		return nil
	}
	if err := h.Notifications.IncAttempts(ctx, n.ID); err != nil {
		return err
	}
	// Delivery target is the dashboard's notification feed; the row
	// itself is the feed item, so delivery is marking it visible.
	if err := h.Notifications.MarkSent(ctx, n.ID); err != nil {
		metrics.NotificationsRetried.Inc()
		return err
	}
	metrics.NotificationsSent.Inc()
	h.Log.Info("notification delivered",
		"notification_id", n.ID,
		"recipient_id", n.RecipientID,
		"kind", n.Kind,
	)
	return nil
}
