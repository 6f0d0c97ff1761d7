// Package memstore is an in-memory implementation of the repository
// interfaces used by engine and service tests. A single mutex serializes
// transactions, standing in for the database's serializable isolation, and
// every transaction works on staged copies so a failed callback leaves the
// store untouched.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ugcforge/escrow-backend/internal/escrow"
	"github.com/ugcforge/escrow-backend/internal/models"
	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

type Store struct {
	mu            sync.Mutex
	users         map[string]models.User
	campaigns     map[string]models.Campaign
	submissions   map[string]models.Submission
	balances      map[string]models.Balance
	entries       []models.LedgerEntry
	notifications map[string]models.Notification
	audits        []models.AuditLog

	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:         map[string]models.User{},
		campaigns:     map[string]models.Campaign{},
		submissions:   map[string]models.Submission{},
		balances:      map[string]models.Balance{},
		notifications: map[string]models.Notification{},
		Now:           time.Now,
	}
}

// --- seeding helpers for tests ---

func (s *Store) SeedUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) SeedCampaign(c models.Campaign) models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.campaigns[c.ID] = c
	return c
}

func (s *Store) SeedSubmission(sub models.Submission) models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = models.SubmissionPending
	}
	s.submissions[sub.ID] = sub
	return sub
}

func (s *Store) Audits() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

// --- repository.ReleaseStore ---

func (s *Store) WithTx(_ context.Context, fn func(repo.ReleaseTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:         s,
		submissions:   map[string]models.Submission{},
		balances:      map[string]models.Balance{},
		notifications: map[string]models.Notification{},
	}
	for k, v := range s.submissions {
		tx.submissions[k] = v
	}
	for k, v := range s.balances {
		tx.balances[k] = v
	}
	tx.entries = append(tx.entries, s.entries...)

	if err := fn(tx); err != nil {
		return err
	}

	s.submissions = tx.submissions
	s.balances = tx.balances
	s.entries = tx.entries
	for k, v := range tx.notifications {
		s.notifications[k] = v
	}
	s.audits = append(s.audits, tx.audits...)
	return nil
}

type memTx struct {
	store         *Store
	submissions   map[string]models.Submission
	balances      map[string]models.Balance
	entries       []models.LedgerEntry
	notifications map[string]models.Notification
	audits        []models.AuditLog
}

func (t *memTx) SubmissionForUpdate(_ context.Context, id string) (models.Submission, error) {
	sub, ok := t.submissions[id]
	if !ok {
		return models.Submission{}, escrow.ErrNotFound
	}
	return sub, nil
}

func (t *memTx) CampaignByID(_ context.Context, id string) (models.Campaign, error) {
	c, ok := t.store.campaigns[id]
	if !ok {
		return models.Campaign{}, escrow.ErrNotFound
	}
	return c, nil
}

func (t *memTx) UpdateSubmissionStatus(_ context.Context, id string, from, to models.SubmissionStatus) error {
	sub, ok := t.submissions[id]
	if !ok || sub.Status != from {
		return escrow.ErrInvalidState
	}
	sub.Status = to
	sub.UpdatedAt = t.store.Now()
	t.submissions[id] = sub
	return nil
}

func (t *memTx) BalanceForUpdate(_ context.Context, accountID string) (models.Balance, error) {
	b, ok := t.balances[accountID]
	if !ok {
		b = models.Balance{AccountID: accountID, LastUpdatedAt: t.store.Now()}
		t.balances[accountID] = b
	}
	return b, nil
}

func (t *memTx) ApplyBalanceDelta(_ context.Context, accountID string, pendingDelta, availableDelta int64) (models.Balance, error) {
	b := t.balances[accountID]
	b.AccountID = accountID
	b.PendingCents += pendingDelta
	b.AvailableCents += availableDelta
	b.LastUpdatedAt = t.store.Now()
	t.balances[accountID] = b
	return b, nil
}

func (t *memTx) AppendEntry(_ context.Context, e models.LedgerEntry) (models.LedgerEntry, error) {
	for _, prev := range t.entries {
		if e.SubmissionID != nil && prev.SubmissionID != nil &&
			*prev.SubmissionID == *e.SubmissionID && prev.Direction == e.Direction {
			return models.LedgerEntry{}, escrow.ErrConflict
		}
		if e.ProviderRef != nil && prev.ProviderRef != nil && *prev.ProviderRef == *e.ProviderRef {
			return models.LedgerEntry{}, escrow.ErrConflict
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = t.store.Now()
	t.entries = append(t.entries, e)
	return e, nil
}

func (t *memTx) InsertNotification(_ context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = t.store.Now()
	t.notifications[n.ID] = n
	return n, nil
}

func (t *memTx) InsertAudit(_ context.Context, l models.AuditLog) error {
	l.CreatedAt = t.store.Now()
	t.audits = append(t.audits, l)
	return nil
}

// --- read-side interfaces ---
//
// The read interfaces collide on method names (GetByID), so each is a
// small view over the same store.

func (s *Store) Submissions() repo.Submissions     { return submissionsView{s} }
func (s *Store) Campaigns() repo.Campaigns         { return campaignsView{s} }
func (s *Store) Ledger() repo.Ledger               { return s }
func (s *Store) Balances() repo.Balances           { return s }
func (s *Store) Notifications() repo.Notifications { return notificationsView{s} }
func (s *Store) AuditLogs() repo.AuditLogs         { return s }

type submissionsView struct{ s *Store }

func (v submissionsView) Create(_ context.Context, sub models.Submission) (models.Submission, error) {
	sub.CreatedAt = v.s.Now()
	sub.UpdatedAt = sub.CreatedAt
	return v.s.SeedSubmission(sub), nil
}

func (v submissionsView) GetByID(_ context.Context, id string) (models.Submission, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	sub, ok := v.s.submissions[id]
	if !ok {
		return models.Submission{}, escrow.ErrNotFound
	}
	return sub, nil
}

func (v submissionsView) UpdateStatus(_ context.Context, id string, from, to models.SubmissionStatus) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	sub, ok := v.s.submissions[id]
	if !ok || sub.Status != from {
		return escrow.ErrInvalidState
	}
	sub.Status = to
	sub.UpdatedAt = v.s.Now()
	v.s.submissions[id] = sub
	return nil
}

type campaignsView struct{ s *Store }

func (v campaignsView) Create(_ context.Context, c models.Campaign) (models.Campaign, error) {
	c.CreatedAt = v.s.Now()
	return v.s.SeedCampaign(c), nil
}

func (v campaignsView) GetByID(_ context.Context, id string) (models.Campaign, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	c, ok := v.s.campaigns[id]
	if !ok {
		return models.Campaign{}, escrow.ErrNotFound
	}
	return c, nil
}

func (s *Store) Create(_ context.Context, l models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.CreatedAt = s.Now()
	s.audits = append(s.audits, l)
	return nil
}

func (s *Store) EntriesForAccount(_ context.Context, accountID string) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) EntriesForSubmission(_ context.Context, submissionID string) ([]models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for _, e := range s.entries {
		if e.SubmissionID != nil && *e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) GetOrCreate(_ context.Context, accountID string) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[accountID]
	if !ok {
		b = models.Balance{AccountID: accountID, LastUpdatedAt: s.Now()}
		s.balances[accountID] = b
	}
	return b, nil
}

func (s *Store) Get(_ context.Context, accountID string) (models.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[accountID]
	if !ok {
		return models.Balance{}, escrow.ErrNotFound
	}
	return b, nil
}

type notificationsView struct{ s *Store }

func (v notificationsView) GetByID(_ context.Context, id string) (models.Notification, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	n, ok := v.s.notifications[id]
	if !ok {
		return models.Notification{}, escrow.ErrNotFound
	}
	return n, nil
}

func (v notificationsView) MarkSent(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	n, ok := v.s.notifications[id]
	if !ok {
		return escrow.ErrNotFound
	}
	now := v.s.Now()
	n.Status = models.NotificationSent
	n.SentAt = &now
	v.s.notifications[id] = n
	return nil
}

func (v notificationsView) MarkFailed(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	n, ok := v.s.notifications[id]
	if !ok {
		return escrow.ErrNotFound
	}
	n.Status = models.NotificationFailed
	v.s.notifications[id] = n
	return nil
}

func (v notificationsView) IncAttempts(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	n, ok := v.s.notifications[id]
	if !ok {
		return escrow.ErrNotFound
	}
	n.Attempts++
	v.s.notifications[id] = n
	return nil
}
