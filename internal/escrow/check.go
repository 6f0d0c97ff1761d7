package escrow

import (
	"context"
	"errors"

	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/repository"
)

// CheckResult is the read-only pre-validation callers use before showing
// an approval action. Reason is set only when CanApprove is false.
type CheckResult struct {
	CanApprove    bool   `json:"can_approve"`
	Reason        string `json:"reason,omitempty"`
	AmountCents   int64  `json:"amount,omitempty"`
	CreatorID     string `json:"creator_id,omitempty"`
	CampaignTitle string `json:"campaign_title,omitempty"`
}

// Checker answers CanApprove without taking locks. It runs the same
// precondition chain as Approve but makes no promise the answer still
// holds by the time Approve runs; Approve re-checks everything inside the
// transaction.
type Checker struct {
	submissions repository.Submissions
	campaigns   repository.Campaigns
	balances    repository.Balances
}

func NewChecker(s repository.Submissions, c repository.Campaigns, b repository.Balances) *Checker {
	return &Checker{submissions: s, campaigns: c, balances: b}
}

func (c *Checker) CanApprove(ctx context.Context, submissionID, actingBrandID string) (CheckResult, error) {
	sub, err := c.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CheckResult{Reason: "submission not found"}, nil
		}
		return CheckResult{}, err
	}
	camp, err := c.campaigns.GetByID(ctx, sub.CampaignID)
	if err != nil {
		return CheckResult{}, err
	}
	if camp.BrandID != actingBrandID {
		return CheckResult{Reason: "campaign not owned by you"}, nil
	}
	if sub.Status != models.SubmissionPending {
		return CheckResult{Reason: "submission is " + string(sub.Status)}, nil
	}
	bal, err := c.balances.GetOrCreate(ctx, actingBrandID)
	if err != nil {
		return CheckResult{}, err
	}
	if bal.PendingCents < sub.AmountCents {
		return CheckResult{Reason: "insufficient pending balance"}, nil
	}
	return CheckResult{
		CanApprove:    true,
		AmountCents:   sub.AmountCents,
		CreatorID:     sub.CreatorID,
		CampaignTitle: camp.Title,
	}, nil
}
