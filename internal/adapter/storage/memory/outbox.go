package memory

import (
	"bytes"
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OutboxRepo implements ports.OutboxRepository in memory.
type OutboxRepo struct {
	store *Store
}

func NewOutboxRepo(s *Store) *OutboxRepo {
	return &OutboxRepo{store: s}
}

// AcquireRelayLock always succeeds; memory transactions are already serialized.
func (r *OutboxRepo) AcquireRelayLock(ctx context.Context, tx pgx.Tx) (bool, error) {
	if _, err := r.store.txOf(tx); err != nil {
		return false, err
	}
	return true, nil
}

// FetchUnpublished returns up to limit unpublished entries in insertion order.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, tx pgx.Tx, limit int) ([]domain.OutboxEntry, error) {
	s := r.store
	if _, err := s.txOf(tx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.OutboxEntry
	for _, e := range s.outbox {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !e.Published {
			e.Payload = bytes.Clone(e.Payload)
			out = append(out, e)
		}
	}
	return out, nil
}

// MarkPublished flags entries as published. Entries already published are not counted.
func (r *OutboxRepo) MarkPublished(ctx context.Context, tx pgx.Tx, eventIDs []uuid.UUID) (int64, error) {
	s := r.store
	t, err := s.txOf(tx)
	if err != nil {
		return 0, err
	}
	if len(eventIDs) == 0 {
		return 0, nil
	}
	want := make(map[uuid.UUID]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		want[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for i := range s.outbox {
		if _, ok := want[s.outbox[i].EventID]; !ok || s.outbox[i].Published {
			continue
		}
		s.outbox[i].Published = true
		s.outbox[i].PublishedAt = &now
		n++
		t.onRollback(func() {
			s.outbox[i].Published = false
			s.outbox[i].PublishedAt = nil
		})
	}
	return n, nil
}

func (r *OutboxRepo) CountUnpublished(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, e := range s.outbox {
		if !e.Published {
			n++
		}
	}
	return n, nil
}

// Count returns the total number of outbox entries, published or not.
func (r *OutboxRepo) Count() int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.outbox)
}
