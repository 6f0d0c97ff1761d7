package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending           SubmissionStatus = "pending"
	SubmissionApproved          SubmissionStatus = "approved"
	SubmissionRejected          SubmissionStatus = "rejected"
	SubmissionRevisionRequested SubmissionStatus = "revision_requested"
)

// Submission is a piece of creator content awaiting brand review.
// AmountCents is fixed at creation and never changes afterwards.
type Submission struct {
	ID          string           `json:"id"`
	CampaignID  string           `json:"campaign_id"`
	CreatorID   string           `json:"creator_id"`
	Status      SubmissionStatus `json:"status"`
	AmountCents int64            `json:"amount_cents"`
	ContentRef  string           `json:"content_ref"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CanTransition reports whether the review lifecycle permits moving from
// the submission's current status to target. approved and rejected are
// terminal; revision_requested loops back to pending on resubmission.
func (s Submission) CanTransition(target SubmissionStatus) bool {
	switch s.Status {
	case SubmissionPending:
		return target == SubmissionApproved || target == SubmissionRejected || target == SubmissionRevisionRequested
	case SubmissionRevisionRequested:
		return target == SubmissionPending
	default:
		return false
	}
}
