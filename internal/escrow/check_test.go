package escrow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
)

func newChecker(f *fixture) *escrow.Checker {
	return escrow.NewChecker(f.store.Submissions(), f.store.Campaigns(), f.store.Balances())
}

func TestCanApprove(t *testing.T) {
	f := newFixture(t)
	c := newChecker(f)
	ctx := context.Background()

	res, err := c.CanApprove(ctx, f.submission.ID, f.brand.ID)
	require.NoError(t, err)
	assert.True(t, res.CanApprove)
	assert.Equal(t, int64(10000), res.AmountCents)
	assert.Equal(t, f.creator.ID, res.CreatorID)
	assert.Equal(t, "Spring UGC Push", res.CampaignTitle)
}

func TestCanApproveReasons(t *testing.T) {
	f := newFixture(t)
	c := newChecker(f)
	ctx := context.Background()

	t.Run("missing submission", func(t *testing.T) {
		res, err := c.CanApprove(ctx, "00000000-0000-0000-0000-000000000000", f.brand.ID)
		require.NoError(t, err)
		assert.False(t, res.CanApprove)
		assert.Equal(t, "submission not found", res.Reason)
	})

	t.Run("wrong brand", func(t *testing.T) {
		other := f.store.SeedUser(models.User{Username: "rival", Email: "rival2@test", Role: models.RoleBrand})
		res, err := c.CanApprove(ctx, f.submission.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, res.CanApprove)
		assert.Equal(t, "campaign not owned by you", res.Reason)
	})

	t.Run("already approved", func(t *testing.T) {
		_, err := f.engine.Approve(ctx, f.submission.ID, f.brand.ID)
		require.NoError(t, err)
		res, err := c.CanApprove(ctx, f.submission.ID, f.brand.ID)
		require.NoError(t, err)
		assert.False(t, res.CanApprove)
		assert.Equal(t, "submission is approved", res.Reason)
	})

	t.Run("insufficient pending", func(t *testing.T) {
		big := f.store.SeedSubmission(models.Submission{
			CampaignID:  f.campaign.ID,
			CreatorID:   f.creator.ID,
			AmountCents: 10_000_000,
		})
		res, err := c.CanApprove(ctx, big.ID, f.brand.ID)
		require.NoError(t, err)
		assert.False(t, res.CanApprove)
		assert.Equal(t, "insufficient pending balance", res.Reason)
	})
}
