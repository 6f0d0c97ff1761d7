package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugcforge/escrow-backend/internal/models"
)

type ledgerRepo struct{ pool *pgxpool.Pool }

const entryColumns = `id, account_id, direction, bucket, kind, amount_cents,
	submission_id, tx_group_id, provider_ref, balance_after_cents, created_at`

// EntriesForAccount returns the account's entries oldest first, the order
// the balance fold consumes them in. Writes go through releaseTx only.
func (r *ledgerRepo) EntriesForAccount(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+`
		   FROM ledger_entries
		  WHERE account_id=$1
		  ORDER BY created_at ASC, id ASC`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *ledgerRepo) EntriesForSubmission(ctx context.Context, submissionID string) ([]models.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+`
		   FROM ledger_entries
		  WHERE submission_id=$1
		  ORDER BY created_at ASC, id ASC`,
		submissionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

type entryRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows entryRows) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.Direction, &e.Bucket, &e.Kind, &e.AmountCents,
			&e.SubmissionID, &e.TxGroupID, &e.ProviderRef, &e.BalanceAfterCents, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
