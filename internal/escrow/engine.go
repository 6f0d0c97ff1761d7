package escrow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ugcforge/escrow-backend/internal/metrics"
	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/repository"
)

// Dispatcher delivers a committed notification to its recipient. Dispatch
// is fire-and-forget from the engine's point of view: delivery failures are
// the dispatcher's problem to retry and never unwind a release.
type Dispatcher interface {
	Dispatch(n models.Notification)
}

// Invalidator drops cached balance reads after a commit moved funds.
type Invalidator interface {
	Invalidate(ctx context.Context, accountIDs ...string)
}

// ReleaseResult is what a successful approval reports back to the caller.
type ReleaseResult struct {
	SubmissionID      string `json:"submission_id"`
	BrandLedgerID     string `json:"brand_ledger_id"`
	CreatorLedgerID   string `json:"creator_ledger_id"`
	AmountReleased    int64  `json:"amount_released"`
	BrandPendingCents int64  `json:"brand_pending_balance"`
	CreatorAvailable  int64  `json:"creator_available_balance"`
	NotificationID    string `json:"notification_id"`

	brandID      string
	notification models.Notification
}

// Engine is the single authoritative entry point for moving escrowed
// funds. Every balance mutation it performs happens inside one
// serializable store transaction together with the ledger entries that
// describe it.
type Engine struct {
	store      repository.ReleaseStore
	dispatcher Dispatcher
	cache      Invalidator
	log        *slog.Logger
}

func NewEngine(store repository.ReleaseStore, d Dispatcher, cache Invalidator, log *slog.Logger) *Engine {
	return &Engine{store: store, dispatcher: d, cache: cache, log: log}
}

// Approve releases the submission's escrowed amount from the brand's
// pending balance to the creator's available balance.
//
// Preconditions, checked in order inside the transaction: the submission
// exists, its campaign belongs to actingBrandID, its status is pending,
// and the brand's pending balance covers the amount. The row lock taken by
// SubmissionForUpdate plus the compare-and-swap status update guarantee
// that of two concurrent approvals exactly one succeeds; the loser sees
// ErrInvalidState (or ErrConflict from the ledger's unique index).
//
// The whole call is safe to retry: once a release committed, a retry fails
// the status check cleanly instead of paying twice.
func (e *Engine) Approve(ctx context.Context, submissionID, actingBrandID string) (ReleaseResult, error) {
	var res ReleaseResult
	err := e.store.WithTx(ctx, func(tx repository.ReleaseTx) error {
		sub, err := tx.SubmissionForUpdate(ctx, submissionID)
		if err != nil {
			return err
		}
		camp, err := tx.CampaignByID(ctx, sub.CampaignID)
		if err != nil {
			return err
		}
		if camp.BrandID != actingBrandID {
			return ErrNotOwner
		}
		if sub.Status != models.SubmissionPending {
			return ErrInvalidState
		}
		brand, err := tx.BalanceForUpdate(ctx, camp.BrandID)
		if err != nil {
			return err
		}
		if brand.PendingCents < sub.AmountCents {
			return ErrInsufficientFunds
		}

		if err := tx.UpdateSubmissionStatus(ctx, sub.ID, models.SubmissionPending, models.SubmissionApproved); err != nil {
			return err
		}

		group := uuid.NewString()
		brand, err = tx.ApplyBalanceDelta(ctx, camp.BrandID, -sub.AmountCents, 0)
		if err != nil {
			return err
		}
		debit, err := tx.AppendEntry(ctx, models.LedgerEntry{
			AccountID:         camp.BrandID,
			Direction:         models.EntryDebit,
			Bucket:            models.BucketPending,
			Kind:              models.EntryRelease,
			AmountCents:       sub.AmountCents,
			SubmissionID:      &sub.ID,
			TxGroupID:         group,
			BalanceAfterCents: brand.PendingCents,
		})
		if err != nil {
			return err
		}
		creator, err := tx.ApplyBalanceDelta(ctx, sub.CreatorID, 0, sub.AmountCents)
		if err != nil {
			return err
		}
		credit, err := tx.AppendEntry(ctx, models.LedgerEntry{
			AccountID:         sub.CreatorID,
			Direction:         models.EntryCredit,
			Bucket:            models.BucketAvailable,
			Kind:              models.EntryRelease,
			AmountCents:       sub.AmountCents,
			SubmissionID:      &sub.ID,
			TxGroupID:         group,
			BalanceAfterCents: creator.AvailableCents,
		})
		if err != nil {
			return err
		}

		note, err := tx.InsertNotification(ctx, models.Notification{
			RecipientID: sub.CreatorID,
			Kind:        models.NotificationFundsReleased,
			Status:      models.NotificationPending,
			Payload: map[string]any{
				"submission_id": sub.ID,
				"campaign_id":   sub.CampaignID,
				"amount_cents":  sub.AmountCents,
			},
		})
		if err != nil {
			return err
		}

		if err := tx.InsertAudit(ctx, models.AuditLog{
			EntityType: "submission",
			EntityID:   &sub.ID,
			Action:     "escrow_release",
			Details: map[string]any{
				"brand_id":     camp.BrandID,
				"creator_id":   sub.CreatorID,
				"amount_cents": sub.AmountCents,
				"tx_group_id":  group,
			},
		}); err != nil {
			return err
		}

		res = ReleaseResult{
			SubmissionID:      sub.ID,
			BrandLedgerID:     debit.ID,
			CreatorLedgerID:   credit.ID,
			AmountReleased:    sub.AmountCents,
			BrandPendingCents: brand.PendingCents,
			CreatorAvailable:  creator.AvailableCents,
			NotificationID:    note.ID,
		}
		res.notification = note
		res.brandID = camp.BrandID
		return nil
	})
	if err != nil {
		metrics.ReleasesFailed.Inc()
		return ReleaseResult{}, err
	}

	metrics.ReleasesTotal.Inc()
	metrics.ReleasedCents.Add(float64(res.AmountReleased))
	if e.cache != nil {
		e.cache.Invalidate(ctx, res.brandID, res.notification.RecipientID)
	}
	// Dispatch only after the commit so the event can never announce a
	// release that rolled back.
	e.dispatcher.Dispatch(res.notification)
	e.log.Info("escrow released",
		"submission_id", res.SubmissionID,
		"amount_cents", res.AmountReleased,
		"notification_id", res.NotificationID,
	)
	return res, nil
}
