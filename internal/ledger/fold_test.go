package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/ledger"
	"github.com/ugcforge/escrow-backend/internal/models"
)

func entry(dir models.EntryDirection, bucket models.BalanceBucket, cents int64) models.LedgerEntry {
	return models.LedgerEntry{
		AccountID:   "acct-1",
		Direction:   dir,
		Bucket:      bucket,
		AmountCents: cents,
		CreatedAt:   time.Now(),
	}
}

func TestFold(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(models.EntryCredit, models.BucketPending, 50000),   // deposit
		entry(models.EntryDebit, models.BucketPending, 10000),    // release out
		entry(models.EntryCredit, models.BucketAvailable, 10000), // release in
		entry(models.EntryDebit, models.BucketAvailable, 2500),   // withdrawal
	}

	b := ledger.Fold("acct-1", entries)
	assert.Equal(t, int64(40000), b.PendingCents)
	assert.Equal(t, int64(7500), b.AvailableCents)
}

func TestFoldEmpty(t *testing.T) {
	b := ledger.Fold("acct-1", nil)
	assert.Zero(t, b.PendingCents)
	assert.Zero(t, b.AvailableCents)
}

// Repeated folds of the same history must agree exactly: integer cents
// leave no room for rounding drift.
func TestFoldIsReproducible(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(models.EntryCredit, models.BucketPending, 3333),
		entry(models.EntryDebit, models.BucketPending, 1111),
		entry(models.EntryCredit, models.BucketAvailable, 1111),
	}
	first := ledger.Fold("acct-1", entries)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ledger.Fold("acct-1", entries))
	}
}

func TestVerify(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(models.EntryCredit, models.BucketPending, 50000),
	}
	stored := models.Balance{AccountID: "acct-1", PendingCents: 50000}
	require.NoError(t, ledger.Verify(stored, entries))

	stored.PendingCents = 49999
	err := ledger.Verify(stored, entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger drift")
}
