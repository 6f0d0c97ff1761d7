package services

import (
	"context"
	"errors"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

// SubmissionService owns the non-release transitions of the review
// lifecycle. None of these paths touch the ledger; only the escrow engine
// moves money, and only on the pending -> approved edge.
type SubmissionService struct {
	subs      repo.Submissions
	campaigns repo.Campaigns
	audits    repo.AuditLogs
}

func NewSubmissionService(s repo.Submissions, c repo.Campaigns, a repo.AuditLogs) *SubmissionService {
	return &SubmissionService{subs: s, campaigns: c, audits: a}
}

func (s *SubmissionService) Create(ctx context.Context, campaignID, creatorID string, amountCents int64, contentRef string) (models.Submission, error) {
	if amountCents <= 0 {
		return models.Submission{}, errors.New("amount must be > 0")
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return models.Submission{}, err
	}
	sub, err := s.subs.Create(ctx, models.Submission{
		CampaignID:  campaignID,
		CreatorID:   creatorID,
		Status:      models.SubmissionPending,
		AmountCents: amountCents,
		ContentRef:  contentRef,
	})
	if err != nil {
		return models.Submission{}, err
	}
	s.audit(ctx, sub.ID, "created", "submission created")
	return sub, nil
}

func (s *SubmissionService) GetByID(ctx context.Context, id string) (models.Submission, error) {
	return s.subs.GetByID(ctx, id)
}

// Reject moves a pending submission to its terminal rejected state. No
// ledger entry is written; the escrowed funds stay in the brand's pending
// balance.
func (s *SubmissionService) Reject(ctx context.Context, id, actingBrandID string) error {
	if err := s.authorizeBrand(ctx, id, actingBrandID); err != nil {
		return err
	}
	if err := s.subs.UpdateStatus(ctx, id, models.SubmissionPending, models.SubmissionRejected); err != nil {
		return err
	}
	s.audit(ctx, id, "rejected", "submission rejected")
	return nil
}

func (s *SubmissionService) RequestRevision(ctx context.Context, id, actingBrandID string) error {
	if err := s.authorizeBrand(ctx, id, actingBrandID); err != nil {
		return err
	}
	if err := s.subs.UpdateStatus(ctx, id, models.SubmissionPending, models.SubmissionRevisionRequested); err != nil {
		return err
	}
	s.audit(ctx, id, "revision_requested", "revision requested")
	return nil
}

// Resubmit closes the revision loop: only the owning creator may move the
// submission back to pending.
func (s *SubmissionService) Resubmit(ctx context.Context, id, actingCreatorID, contentRef string) error {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.CreatorID != actingCreatorID {
		return escrow.ErrNotOwner
	}
	if err := s.subs.UpdateStatus(ctx, id, models.SubmissionRevisionRequested, models.SubmissionPending); err != nil {
		return err
	}
	s.audit(ctx, id, "resubmitted", "content resubmitted: "+contentRef)
	return nil
}

func (s *SubmissionService) authorizeBrand(ctx context.Context, submissionID, actingBrandID string) error {
	sub, err := s.subs.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	camp, err := s.campaigns.GetByID(ctx, sub.CampaignID)
	if err != nil {
		return err
	}
	if camp.BrandID != actingBrandID {
		return escrow.ErrNotOwner
	}
	return nil
}

func (s *SubmissionService) audit(ctx context.Context, entityID, action, message string) {
	_ = s.audits.Create(ctx, models.AuditLog{
		EntityType: "submission",
		EntityID:   &entityID,
		Action:     action,
		Details:    map[string]any{"message": message},
	})
}
