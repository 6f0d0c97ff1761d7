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

type campaignsRepo struct{ pool *pgxpool.Pool }

func (r *campaignsRepo) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO campaigns (id, brand_id, title) VALUES ($1,$2,$3) RETURNING created_at`,
		c.ID, c.BrandID, c.Title,
	).Scan(&c.CreatedAt)
	if err != nil {
		return models.Campaign{}, err
	}
	return c, nil
}

func (r *campaignsRepo) GetByID(ctx context.Context, id string) (models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx,
		`SELECT id, brand_id, title, created_at FROM campaigns WHERE id=$1`, id,
	).Scan(&c.ID, &c.BrandID, &c.Title, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Campaign{}, escrow.ErrNotFound
	}
	return c, err
}
