package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/repository/memstore"
	"github.com/ugcforge/escrow-backend/internal/services"
)

type lifecycleFixture struct {
	store   *memstore.Store
	svc     *services.SubmissionService
	brand   models.User
	creator models.User
	camp    models.Campaign
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	store := memstore.New()
	svc := services.NewSubmissionService(store.Submissions(), store.Campaigns(), store.AuditLogs())
	brand := store.SeedUser(models.User{Username: "acme", Email: "brand@test", Role: models.RoleBrand})
	creator := store.SeedUser(models.User{Username: "maker", Email: "maker@test", Role: models.RoleCreator})
	camp := store.SeedCampaign(models.Campaign{BrandID: brand.ID, Title: "Launch"})
	return &lifecycleFixture{store: store, svc: svc, brand: brand, creator: creator, camp: camp}
}

func TestSubmissionCreate(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.camp.ID, f.creator.ID, 10000, "https://cdn.test/v1.mp4")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, sub.Status)

	_, err = f.svc.Create(ctx, f.camp.ID, f.creator.ID, 0, "x")
	require.Error(t, err)

	_, err = f.svc.Create(ctx, "00000000-0000-0000-0000-000000000000", f.creator.ID, 100, "x")
	require.ErrorIs(t, err, escrow.ErrNotFound)
}

func TestRejectWritesNoLedgerEntries(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.camp.ID, f.creator.ID, 10000, "v1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Reject(ctx, sub.ID, f.brand.ID))

	got, err := f.svc.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, got.Status)

	entries, err := f.store.EntriesForSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Terminal: no way back.
	err = f.svc.RequestRevision(ctx, sub.ID, f.brand.ID)
	require.ErrorIs(t, err, escrow.ErrInvalidState)
}

func TestRevisionLoop(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.camp.ID, f.creator.ID, 10000, "v1")
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestRevision(ctx, sub.ID, f.brand.ID))
	got, _ := f.svc.GetByID(ctx, sub.ID)
	assert.Equal(t, models.SubmissionRevisionRequested, got.Status)

	// Only the owning creator may resubmit.
	other := f.store.SeedUser(models.User{Username: "other", Email: "other@test", Role: models.RoleCreator})
	err = f.svc.Resubmit(ctx, sub.ID, other.ID, "v2")
	require.ErrorIs(t, err, escrow.ErrNotOwner)

	require.NoError(t, f.svc.Resubmit(ctx, sub.ID, f.creator.ID, "v2"))
	got, _ = f.svc.GetByID(ctx, sub.ID)
	assert.Equal(t, models.SubmissionPending, got.Status)
}

func TestBrandOwnershipEnforced(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	sub, err := f.svc.Create(ctx, f.camp.ID, f.creator.ID, 10000, "v1")
	require.NoError(t, err)

	rival := f.store.SeedUser(models.User{Username: "rival", Email: "rival@test", Role: models.RoleBrand})
	require.ErrorIs(t, f.svc.Reject(ctx, sub.ID, rival.ID), escrow.ErrNotOwner)
	require.ErrorIs(t, f.svc.RequestRevision(ctx, sub.ID, rival.ID), escrow.ErrNotOwner)
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.SubmissionStatus
		ok       bool
	}{
		{models.SubmissionPending, models.SubmissionApproved, true},
		{models.SubmissionPending, models.SubmissionRejected, true},
		{models.SubmissionPending, models.SubmissionRevisionRequested, true},
		{models.SubmissionRevisionRequested, models.SubmissionPending, true},
		{models.SubmissionRevisionRequested, models.SubmissionApproved, false},
		{models.SubmissionApproved, models.SubmissionRejected, false},
		{models.SubmissionApproved, models.SubmissionPending, false},
		{models.SubmissionRejected, models.SubmissionPending, false},
	}
	for _, tc := range cases {
		sub := models.Submission{Status: tc.from}
		assert.Equal(t, tc.ok, sub.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
