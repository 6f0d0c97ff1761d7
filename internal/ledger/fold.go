// Package ledger holds the balance projection: a pure fold over an
// account's entry history. The stored balances row and the redis cache are
// both derived views of this fold; replaying the same history always
// reproduces the same totals because amounts are integer cents.
package ledger

import (
	"fmt"

	"github.com/ugcforge/escrow-backend/internal/models"
)

// Fold computes an account's balance from its entries, oldest first.
func Fold(accountID string, entries []models.LedgerEntry) models.Balance {
	b := models.Balance{AccountID: accountID}
	for _, e := range entries {
		switch e.Bucket {
		case models.BucketPending:
			b.PendingCents += e.SignedAmount()
		case models.BucketAvailable:
			b.AvailableCents += e.SignedAmount()
		}
		if e.CreatedAt.After(b.LastUpdatedAt) {
			b.LastUpdatedAt = e.CreatedAt
		}
	}
	return b
}

// Verify replays the history and compares it against the stored balance
// row. It is the drift check run by audits and tests: a mismatch means an
// append skipped the shared transaction.
func Verify(stored models.Balance, entries []models.LedgerEntry) error {
	folded := Fold(stored.AccountID, entries)
	if folded.PendingCents != stored.PendingCents || folded.AvailableCents != stored.AvailableCents {
		return fmt.Errorf("ledger drift for account %s: folded pending=%d available=%d, stored pending=%d available=%d",
			stored.AccountID, folded.PendingCents, folded.AvailableCents, stored.PendingCents, stored.AvailableCents)
	}
	return nil
}
