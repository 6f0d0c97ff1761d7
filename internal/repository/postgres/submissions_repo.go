package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
)

type submissionsRepo struct{ pool *pgxpool.Pool }

func (r *submissionsRepo) Create(ctx context.Context, s models.Submission) (models.Submission, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = models.SubmissionPending
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (id, campaign_id, creator_id, status, amount_cents, content_ref)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		s.ID, s.CampaignID, s.CreatorID, s.Status, s.AmountCents, s.ContentRef,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Submission{}, mapPgError(err)
	}
	return s, nil
}

func (r *submissionsRepo) GetByID(ctx context.Context, id string) (models.Submission, error) {
	var s models.Submission
	err := r.pool.QueryRow(ctx,
		`SELECT id, campaign_id, creator_id, status, amount_cents, content_ref, created_at, updated_at
		   FROM submissions WHERE id=$1`,
		id,
	).Scan(&s.ID, &s.CampaignID, &s.CreatorID, &s.Status, &s.AmountCents, &s.ContentRef, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Submission{}, escrow.ErrNotFound
	}
	return s, err
}

func (r *submissionsRepo) UpdateStatus(ctx context.Context, id string, from, to models.SubmissionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET status=$3, updated_at=now() WHERE id=$1 AND status=$2`,
		id, from, to,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return escrow.ErrInvalidState
	}
	return nil
}
