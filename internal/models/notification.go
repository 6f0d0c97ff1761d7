package models

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

const NotificationFundsReleased = "funds_released"

// Notification is written inside the release transaction and delivered
// asynchronously afterwards. Delivery is at-least-once; a failed delivery
// never rolls back the fund release it announces.
type Notification struct {
	ID          string             `json:"id"`
	RecipientID string             `json:"recipient_id"`
	Kind        string             `json:"kind"`
	Payload     map[string]any     `json:"payload"`
	Status      NotificationStatus `json:"status"`
	Attempts    int                `json:"attempts"`
	CreatedAt   time.Time          `json:"created_at"`
	SentAt      *time.Time         `json:"sent_at,omitempty"`
}
