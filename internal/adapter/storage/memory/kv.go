package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
)

// PeriodTotalsStore implements ports.PeriodTotalsStore in memory with the
// same count guard as the Redis store.
type PeriodTotalsStore struct {
	store *Store
	ttl   time.Duration
}

func NewPeriodTotalsStore(s *Store, ttl time.Duration) *PeriodTotalsStore {
	return &PeriodTotalsStore{store: s, ttl: ttl}
}

func (p *PeriodTotalsStore) Apply(ctx context.Context, projector string, eventID uuid.UUID, totals []domain.PeriodTotals) (bool, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range totals {
		s.putTotalsLocked(t)
	}

	key := fmt.Sprintf("ledger:%s:%s", projector, eventID)
	if exp, ok := s.ledger[key]; ok && (p.ttl <= 0 || s.now().Before(exp)) {
		return false, nil
	}
	s.ledger[key] = s.now().Add(p.ttl)
	return true, nil
}

func (p *PeriodTotalsStore) Set(ctx context.Context, t domain.PeriodTotals) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	p.store.putTotalsLocked(t)
	return nil
}

func (p *PeriodTotalsStore) Get(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	t, ok := p.store.totals[subject.Key(period)]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// Delete drops a subject's totals, simulating eviction.
func (p *PeriodTotalsStore) Delete(subject domain.Subject, period string) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	delete(p.store.totals, subject.Key(period))
}

func (s *Store) putTotalsLocked(t domain.PeriodTotals) {
	key := t.Subject.Key(t.Period)
	if prev, ok := s.totals[key]; ok && prev.Count > t.Count {
		return
	}
	s.totals[key] = t
}

// CommandCache implements ports.CommandResultCache in memory.
type CommandCache struct {
	store *Store
}

func NewCommandCache(s *Store) *CommandCache {
	return &CommandCache{store: s}
}

func (c *CommandCache) Get(ctx context.Context, commandID string) (*domain.CommandResult, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.BuildCommandKey(commandID)
	entry, ok := s.commands[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.commands, key)
		return nil, nil
	}
	res := entry.result
	res.EventIDs = slices.Clone(res.EventIDs)
	return &res, nil
}

// Set keeps the first result stored for a command id.
func (c *CommandCache) Set(ctx context.Context, res *domain.CommandResult, ttl time.Duration) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.BuildCommandKey(res.CommandID)
	if entry, ok := s.commands[key]; ok && s.now().Before(entry.expiresAt) {
		return nil
	}
	stored := *res
	stored.EventIDs = slices.Clone(res.EventIDs)
	s.commands[key] = cachedResult{result: stored, expiresAt: s.now().Add(ttl)}
	return nil
}

// Forget removes a cached command result, simulating expiry.
func (c *CommandCache) Forget(commandID string) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	delete(c.store.commands, domain.BuildCommandKey(commandID))
}

// RateLimitStore implements ports.RateLimitStore in memory. Counters of past
// windows are never collected; it is meant for tests and single-node dev.
type RateLimitStore struct {
	store *Store
}

func NewRateLimitStore(s *Store) *RateLimitStore {
	return &RateLimitStore{store: s}
}

func (r *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	windowSecs := int64(window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	windowID := s.now().Unix() / windowSecs
	counterKey := fmt.Sprintf("%s:%d", key, windowID)
	s.counters[counterKey]++
	count := s.counters[counterKey]

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * windowSecs,
	}, nil
}
