package escrow

import "errors"

var (
	// ErrNotFound indicates the submission does not exist.
	ErrNotFound = errors.New("submission not found")
	// ErrNotOwner indicates the acting user does not own the campaign.
	ErrNotOwner = errors.New("campaign not owned by acting user")
	// ErrInvalidState indicates the submission is not in the status the
	// operation requires; it is what a double-approval fails with.
	ErrInvalidState = errors.New("submission not in required state")
	// ErrInsufficientFunds indicates the paying bucket cannot cover the
	// amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConflict indicates a concurrent duplicate ledger write, e.g. a
	// replayed deposit webhook or a racing release leg.
	ErrConflict = errors.New("duplicate ledger write")
)
