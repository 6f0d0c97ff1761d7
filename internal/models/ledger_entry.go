package models

import "time"

type EntryDirection string

const (
	EntryDebit  EntryDirection = "debit"
	EntryCredit EntryDirection = "credit"
)

// BalanceBucket names which side of an account a ledger entry touches.
type BalanceBucket string

const (
	BucketPending   BalanceBucket = "pending"
	BucketAvailable BalanceBucket = "available"
)

type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryRelease    EntryKind = "release"
	EntryWithdrawal EntryKind = "withdrawal"
)

// LedgerEntry is an immutable record of one balance-affecting event.
// Entries are append-only: once written they are never updated or deleted.
//
// BalanceAfterCents snapshots the entry's bucket after the entry applied,
// so any suffix of an account's history can be audited without a full
// replay. SubmissionID is set on release legs only; the two legs of one
// release share a TxGroupID. ProviderRef carries the payment provider's
// idempotency reference on deposits.
type LedgerEntry struct {
	ID                string         `json:"id"`
	AccountID         string         `json:"account_id"`
	Direction         EntryDirection `json:"direction"`
	Bucket            BalanceBucket  `json:"bucket"`
	Kind              EntryKind      `json:"kind"`
	AmountCents       int64          `json:"amount_cents"`
	SubmissionID      *string        `json:"submission_id,omitempty"`
	TxGroupID         string         `json:"tx_group_id"`
	ProviderRef       *string        `json:"provider_ref,omitempty"`
	BalanceAfterCents int64          `json:"balance_after_cents"`
	CreatedAt         time.Time      `json:"created_at"`
}

// SignedAmount is the entry's effect on its bucket: credits add, debits
// subtract.
func (e LedgerEntry) SignedAmount() int64 {
	if e.Direction == EntryDebit {
		return -e.AmountCents
	}
	return e.AmountCents
}
