package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

type releaseStore struct{ pool *pgxpool.Pool }

// WithTx runs fn inside one serializable read-write transaction. The
// releaseTx view it hands to fn is only valid until WithTx returns.
func (s *releaseStore) WithTx(ctx context.Context, fn func(repo.ReleaseTx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(&releaseTx{tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type releaseTx struct{ tx pgx.Tx }

// mapPgError folds unique-index violations into the domain conflict error.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return escrow.ErrConflict
	}
	return err
}

func (t *releaseTx) SubmissionForUpdate(ctx context.Context, id string) (models.Submission, error) {
	var s models.Submission
	err := t.tx.QueryRow(ctx,
		`SELECT id, campaign_id, creator_id, status, amount_cents, content_ref, created_at, updated_at
		   FROM submissions
		  WHERE id=$1
		    FOR UPDATE`,
		id,
	).Scan(&s.ID, &s.CampaignID, &s.CreatorID, &s.Status, &s.AmountCents, &s.ContentRef, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Submission{}, escrow.ErrNotFound
	}
	return s, err
}

func (t *releaseTx) CampaignByID(ctx context.Context, id string) (models.Campaign, error) {
	var c models.Campaign
	err := t.tx.QueryRow(ctx,
		`SELECT id, brand_id, title, created_at FROM campaigns WHERE id=$1`, id,
	).Scan(&c.ID, &c.BrandID, &c.Title, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Campaign{}, escrow.ErrNotFound
	}
	return c, err
}

func (t *releaseTx) UpdateSubmissionStatus(ctx context.Context, id string, from, to models.SubmissionStatus) error {
	tag, err := t.tx.Exec(ctx,
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

func (t *releaseTx) BalanceForUpdate(ctx context.Context, accountID string) (models.Balance, error) {
	if _, err := t.tx.Exec(ctx,
		`INSERT INTO balances(account_id) VALUES($1) ON CONFLICT (account_id) DO NOTHING`,
		accountID,
	); err != nil {
		return models.Balance{}, err
	}
	var b models.Balance
	err := t.tx.QueryRow(ctx,
		`SELECT account_id, pending_cents, available_cents, last_updated_at
		   FROM balances
		  WHERE account_id=$1
		    FOR UPDATE`,
		accountID,
	).Scan(&b.AccountID, &b.PendingCents, &b.AvailableCents, &b.LastUpdatedAt)
	return b, err
}

func (t *releaseTx) ApplyBalanceDelta(ctx context.Context, accountID string, pendingDelta, availableDelta int64) (models.Balance, error) {
	if _, err := t.tx.Exec(ctx,
		`INSERT INTO balances(account_id) VALUES($1) ON CONFLICT (account_id) DO NOTHING`,
		accountID,
	); err != nil {
		return models.Balance{}, err
	}
	var b models.Balance
	err := t.tx.QueryRow(ctx,
		`UPDATE balances
		    SET pending_cents   = pending_cents + $2,
		        available_cents = available_cents + $3,
		        last_updated_at = now()
		  WHERE account_id = $1
		  RETURNING account_id, pending_cents, available_cents, last_updated_at`,
		accountID, pendingDelta, availableDelta,
	).Scan(&b.AccountID, &b.PendingCents, &b.AvailableCents, &b.LastUpdatedAt)
	return b, err
}

func (t *releaseTx) AppendEntry(ctx context.Context, e models.LedgerEntry) (models.LedgerEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := t.tx.QueryRow(ctx,
		`INSERT INTO ledger_entries
		   (id, account_id, direction, bucket, kind, amount_cents, submission_id, tx_group_id, provider_ref, balance_after_cents)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING created_at`,
		e.ID, e.AccountID, e.Direction, e.Bucket, e.Kind, e.AmountCents, e.SubmissionID, e.TxGroupID, e.ProviderRef, e.BalanceAfterCents,
	).Scan(&e.CreatedAt)
	if err != nil {
		return models.LedgerEntry{}, mapPgError(err)
	}
	return e, nil
}

func (t *releaseTx) InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	err := t.tx.QueryRow(ctx,
		`INSERT INTO notifications (id, recipient_id, kind, payload, status)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		n.ID, n.RecipientID, n.Kind, n.Payload, n.Status,
	).Scan(&n.CreatedAt)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (t *releaseTx) InsertAudit(ctx context.Context, l models.AuditLog) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO audit_logs(entity_type, entity_id, action, details) VALUES($1,$2,$3,$4)`,
		l.EntityType, l.EntityID, l.Action, l.Details,
	)
	return err
}
