package escrow

import (
	"context"

	"github.com/google/uuid"

	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/repository"
)

// Deposit credits a brand's pending balance from an upstream payment
// provider event. providerRef is the provider's reference for the payment
// and doubles as the idempotency key: a replayed webhook hits the ledger's
// unique index and fails with ErrConflict instead of crediting twice.
func (e *Engine) Deposit(ctx context.Context, brandID string, amountCents int64, providerRef string) (models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := e.store.WithTx(ctx, func(tx repository.ReleaseTx) error {
		bal, err := tx.ApplyBalanceDelta(ctx, brandID, amountCents, 0)
		if err != nil {
			return err
		}
		entry, err = tx.AppendEntry(ctx, models.LedgerEntry{
			AccountID:         brandID,
			Direction:         models.EntryCredit,
			Bucket:            models.BucketPending,
			Kind:              models.EntryDeposit,
			AmountCents:       amountCents,
			TxGroupID:         uuid.NewString(),
			ProviderRef:       &providerRef,
			BalanceAfterCents: bal.PendingCents,
		})
		if err != nil {
			return err
		}
		return tx.InsertAudit(ctx, models.AuditLog{
			EntityType: "account",
			EntityID:   &brandID,
			Action:     "deposit",
			Details:    map[string]any{"amount_cents": amountCents, "provider_ref": providerRef},
		})
	})
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if e.cache != nil {
		e.cache.Invalidate(ctx, brandID)
	}
	e.log.Info("deposit credited", "account_id", brandID, "amount_cents", amountCents)
	return entry, nil
}

// Withdraw debits a creator's available balance. It fails with
// ErrInsufficientFunds when the bucket cannot cover the amount; balances
// are untouched on failure.
func (e *Engine) Withdraw(ctx context.Context, creatorID string, amountCents int64) (models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := e.store.WithTx(ctx, func(tx repository.ReleaseTx) error {
		bal, err := tx.BalanceForUpdate(ctx, creatorID)
		if err != nil {
			return err
		}
		if bal.AvailableCents < amountCents {
			return ErrInsufficientFunds
		}
		bal, err = tx.ApplyBalanceDelta(ctx, creatorID, 0, -amountCents)
		if err != nil {
			return err
		}
		entry, err = tx.AppendEntry(ctx, models.LedgerEntry{
			AccountID:         creatorID,
			Direction:         models.EntryDebit,
			Bucket:            models.BucketAvailable,
			Kind:              models.EntryWithdrawal,
			AmountCents:       amountCents,
			TxGroupID:         uuid.NewString(),
			BalanceAfterCents: bal.AvailableCents,
		})
		if err != nil {
			return err
		}
		return tx.InsertAudit(ctx, models.AuditLog{
			EntityType: "account",
			EntityID:   &creatorID,
			Action:     "withdrawal",
			Details:    map[string]any{"amount_cents": amountCents},
		})
	})
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if e.cache != nil {
		e.cache.Invalidate(ctx, creatorID)
	}
	e.log.Info("withdrawal debited", "account_id", creatorID, "amount_cents", amountCents)
	return entry, nil
}
