package repository

import (
	"context"

	"github.com/ugcforge/escrow-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Campaigns interface {
	Create(ctx context.Context, c models.Campaign) (models.Campaign, error)
	GetByID(ctx context.Context, id string) (models.Campaign, error)
}

type Submissions interface {
	Create(ctx context.Context, s models.Submission) (models.Submission, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	// UpdateStatus is a compare-and-swap: it succeeds only if the row is
	// still in from, otherwise it reports ErrInvalidState.
	UpdateStatus(ctx context.Context, id string, from, to models.SubmissionStatus) error
}

// Ledger is the read side of the append-only store. Writes happen only
// through a ReleaseTx so every append commits together with the balance
// update it implies.
type Ledger interface {
	// EntriesForAccount returns the account's entries oldest first, the
	// order the balance fold consumes them in.
	EntriesForAccount(ctx context.Context, accountID string) ([]models.LedgerEntry, error)
	EntriesForSubmission(ctx context.Context, submissionID string) ([]models.LedgerEntry, error)
}

type Balances interface {
	GetOrCreate(ctx context.Context, accountID string) (models.Balance, error)
	Get(ctx context.Context, accountID string) (models.Balance, error)
}

type Notifications interface {
	GetByID(ctx context.Context, id string) (models.Notification, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
	IncAttempts(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// ReleaseTx is the transactional view the escrow engine works through.
// Everything performed inside one WithTx callback commits atomically or
// not at all; no caller ever observes a debit without its matching credit.
type ReleaseTx interface {
	// SubmissionForUpdate loads and row-locks the submission so the
	// status check and the ledger mutation are serialized against
	// concurrent approvals. Missing rows report ErrNotFound.
	SubmissionForUpdate(ctx context.Context, id string) (models.Submission, error)
	CampaignByID(ctx context.Context, id string) (models.Campaign, error)
	// UpdateSubmissionStatus is the same compare-and-swap as
	// Submissions.UpdateStatus, inside the transaction.
	UpdateSubmissionStatus(ctx context.Context, id string, from, to models.SubmissionStatus) error
	BalanceForUpdate(ctx context.Context, accountID string) (models.Balance, error)
	// ApplyBalanceDelta adjusts the account's buckets and returns the
	// updated row.
	ApplyBalanceDelta(ctx context.Context, accountID string, pendingDelta, availableDelta int64) (models.Balance, error)
	// AppendEntry writes one immutable ledger entry. A duplicate
	// (submission, direction) pair or provider reference reports
	// ErrConflict.
	AppendEntry(ctx context.Context, e models.LedgerEntry) (models.LedgerEntry, error)
	InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	InsertAudit(ctx context.Context, l models.AuditLog) error
}

// ReleaseStore runs a function inside a single serializable transaction.
type ReleaseStore interface {
	WithTx(ctx context.Context, fn func(ReleaseTx) error) error
}
