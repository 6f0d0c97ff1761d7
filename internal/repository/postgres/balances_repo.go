package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) GetOrCreate(ctx context.Context, accountID string) (models.Balance, error) {
	if b, err := r.Get(ctx, accountID); err == nil {
		return b, nil
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO balances(account_id) VALUES($1) ON CONFLICT (account_id) DO NOTHING`,
		accountID,
	)
	if err != nil {
		return models.Balance{}, err
	}
	return r.Get(ctx, accountID)
}

func (r *balancesRepo) Get(ctx context.Context, accountID string) (models.Balance, error) {
	var b models.Balance
	err := r.pool.QueryRow(ctx,
		`SELECT account_id, pending_cents, available_cents, last_updated_at
		   FROM balances WHERE account_id=$1`,
		accountID,
	).Scan(&b.AccountID, &b.PendingCents, &b.AvailableCents, &b.LastUpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balance{}, escrow.ErrNotFound
	}
	return b, err
}
