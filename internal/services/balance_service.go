package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ugcforge/escrow-backend/internal/ledger"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

const balanceCacheTTL = 30 * time.Second

// BalanceService serves balance reads through a redis read-through cache.
// The engine invalidates the cache after every commit that moves funds, so
// a read reflects either the pre- or post-release state, never a partial
// one (the underlying row only ever changes inside the store transaction).
type BalanceService struct {
	balances repo.Balances
	entries  repo.Ledger
	cache    *redis.Client
	log      *slog.Logger
}

func NewBalanceService(b repo.Balances, l repo.Ledger, cache *redis.Client, log *slog.Logger) *BalanceService {
	return &BalanceService{balances: b, entries: l, cache: cache, log: log}
}

func cacheKey(accountID string) string { return "balance:" + accountID }

func (s *BalanceService) Current(ctx context.Context, accountID string) (models.Balance, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey(accountID)).Bytes(); err == nil {
			var b models.Balance
			if json.Unmarshal(raw, &b) == nil {
				return b, nil
			}
		}
	}
	b, err := s.balances.GetOrCreate(ctx, accountID)
	if err != nil {
		return models.Balance{}, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(b); err == nil {
			if err := s.cache.Set(ctx, cacheKey(accountID), raw, balanceCacheTTL).Err(); err != nil {
				s.log.Warn("balance cache set", "err", err)
			}
		}
	}
	return b, nil
}

// Invalidate implements escrow.Invalidator.
func (s *BalanceService) Invalidate(ctx context.Context, accountIDs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, cacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("balance cache invalidate", "err", err)
	}
}

// Recompute folds the account's full ledger history and checks it against
// the stored row. Exposed for audits; also how tests assert the no-drift
// property.
func (s *BalanceService) Recompute(ctx context.Context, accountID string) (models.Balance, error) {
	entries, err := s.entries.EntriesForAccount(ctx, accountID)
	if err != nil {
		return models.Balance{}, err
	}
	folded := ledger.Fold(accountID, entries)
	stored, err := s.balances.GetOrCreate(ctx, accountID)
	if err != nil {
		return models.Balance{}, err
	}
	if err := ledger.Verify(stored, entries); err != nil {
		return models.Balance{}, err
	}
	return folded, nil
}

// Entries exposes the account's ledger history, oldest first.
func (s *BalanceService) Entries(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	return s.entries.EntriesForAccount(ctx, accountID)
}
