package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	"github.com/ugcforge/escrow-backend/internal/repository/memstore"
	"github.com/ugcforge/escrow-backend/internal/services"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(models.Notification) {}

func newBalanceFixture(t *testing.T) (*memstore.Store, *services.BalanceService, *escrow.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memstore.New()
	svc := services.NewBalanceService(store.Balances(), store.Ledger(), client, log)
	engine := escrow.NewEngine(store, nopDispatcher{}, svc, log)
	return store, svc, engine, mr
}

func TestBalanceCurrentCaches(t *testing.T) {
	store, svc, engine, mr := newBalanceFixture(t)
	ctx := context.Background()

	brand := store.SeedUser(models.User{Username: "acme", Email: "b@test", Role: models.RoleBrand})
	_, err := engine.Deposit(ctx, brand.ID, 50000, "chk_1")
	require.NoError(t, err)

	b, err := svc.Current(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), b.PendingCents)
	assert.True(t, mr.Exists("balance:"+brand.ID))

	// Served from cache on the second read.
	b2, err := svc.Current(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, b.PendingCents, b2.PendingCents)
}

func TestBalanceCacheInvalidatedOnRelease(t *testing.T) {
	store, svc, engine, mr := newBalanceFixture(t)
	ctx := context.Background()

	brand := store.SeedUser(models.User{Username: "acme", Email: "b@test", Role: models.RoleBrand})
	creator := store.SeedUser(models.User{Username: "maker", Email: "c@test", Role: models.RoleCreator})
	camp := store.SeedCampaign(models.Campaign{BrandID: brand.ID, Title: "Launch"})
	sub := store.SeedSubmission(models.Submission{CampaignID: camp.ID, CreatorID: creator.ID, AmountCents: 10000})

	_, err := engine.Deposit(ctx, brand.ID, 50000, "chk_1")
	require.NoError(t, err)

	// Warm the cache, then release.
	_, err = svc.Current(ctx, brand.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("balance:"+brand.ID))

	_, err = engine.Approve(ctx, sub.ID, brand.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("balance:"+brand.ID))

	// A fresh read sees the post-release state, never a partial one.
	b, err := svc.Current(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), b.PendingCents)
}

func TestRecomputeMatchesStored(t *testing.T) {
	store, svc, engine, _ := newBalanceFixture(t)
	ctx := context.Background()

	brand := store.SeedUser(models.User{Username: "acme", Email: "b@test", Role: models.RoleBrand})
	creator := store.SeedUser(models.User{Username: "maker", Email: "c@test", Role: models.RoleCreator})
	camp := store.SeedCampaign(models.Campaign{BrandID: brand.ID, Title: "Launch"})

	_, err := engine.Deposit(ctx, brand.ID, 100000, "chk_1")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		sub := store.SeedSubmission(models.Submission{CampaignID: camp.ID, CreatorID: creator.ID, AmountCents: 7500})
		_, err := engine.Approve(ctx, sub.ID, brand.ID)
		require.NoError(t, err)
	}
	_, err = engine.Withdraw(ctx, creator.ID, 5000)
	require.NoError(t, err)

	for _, account := range []string{brand.ID, creator.ID} {
		folded, err := svc.Recompute(ctx, account)
		require.NoError(t, err)
		stored, err := store.Get(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, stored.PendingCents, folded.PendingCents)
		assert.Equal(t, stored.AvailableCents, folded.AvailableCents)
	}
}
