package models

import "time"

// Balance is the per-account projection of the ledger: pending funds are
// committed to campaigns but not yet released; available funds are
// withdrawable. The stored row is an incrementally maintained total kept in
// step with the ledger inside the same transaction as every append.
type Balance struct {
	AccountID      string    `json:"account_id"`
	PendingCents   int64     `json:"pending_cents"`
	AvailableCents int64     `json:"available_cents"`
	LastUpdatedAt  time.Time `json:"last_updated_at"`
}
