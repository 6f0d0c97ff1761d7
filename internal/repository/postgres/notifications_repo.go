package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
)

type notificationsRepo struct{ pool *pgxpool.Pool }

func (r *notificationsRepo) GetByID(ctx context.Context, id string) (models.Notification, error) {
	var n models.Notification
	err := r.pool.QueryRow(ctx,
		`SELECT id, recipient_id, kind, payload, status, attempts, created_at, sent_at
		   FROM notifications WHERE id=$1`,
		id,
	).Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Payload, &n.Status, &n.Attempts, &n.CreatedAt, &n.SentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Notification{}, escrow.ErrNotFound
	}
	return n, err
}

func (r *notificationsRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET status='sent', sent_at=now() WHERE id=$1`, id)
	return err
}

func (r *notificationsRepo) MarkFailed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET status='failed' WHERE id=$1`, id)
	return err
}

func (r *notificationsRepo) IncAttempts(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET attempts = attempts + 1 WHERE id=$1`, id)
	return err
}
