package memory

import (
	"bytes"
	"context"
	"fmt"
	"maps"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/telemetry"

	"github.com/google/uuid"
)

// EventStore implements ports.EventStore in memory.
type EventStore struct {
	store *Store
}

func NewEventStore(s *Store) *EventStore {
	return &EventStore{store: s}
}

// Append writes events and their outbox entries atomically under the store lock.
func (es *EventStore) Append(ctx context.Context, aggregateID uuid.UUID, events []domain.DomainEvent, expectedVersion int64) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperror.StorageFailure(err)
	}

	traceparent, tracestate := telemetry.TraceContextStrings(ctx)

	entries := make([]domain.OutboxEntry, 0, len(events))
	for i, e := range events {
		want := expectedVersion + int64(i) + 1
		if e.AggregateID != aggregateID || e.AggregateVersion != want {
			return apperror.InternalError(fmt.Errorf(
				"event %s targets %s@%d, expected %s@%d", e.EventID, e.AggregateID, e.AggregateVersion, aggregateID, want))
		}
		entry, err := domain.NewOutboxEntry(e)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("build outbox entry: %w", err))
		}
		entry.Traceparent = traceparent
		entry.Tracestate = tracestate
		entries = append(entries, entry)
	}

	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.versionLocked(aggregateID)
	if current != expectedVersion {
		return apperror.ErrConcurrencyConflict(aggregateID.String(), expectedVersion, current)
	}
	for _, e := range events {
		if _, dup := s.byID[e.EventID]; dup {
			return apperror.StorageFailure(fmt.Errorf("duplicate event id %s", e.EventID))
		}
	}

	for i, e := range events {
		s.position++
		stored := cloneEvent(e)
		stored.Position = s.position
		s.events = append(s.events, stored)
		s.byID[e.EventID] = struct{}{}
		s.aggregates[aggregateID] = append(s.aggregates[aggregateID], len(s.events)-1)

		s.outboxSeq++
		entries[i].ID = s.outboxSeq
		s.outbox = append(s.outbox, entries[i])
	}
	return nil
}

func (s *Store) versionLocked(aggregateID uuid.UUID) int64 {
	idx := s.aggregates[aggregateID]
	if len(idx) == 0 {
		return 0
	}
	return s.events[idx[len(idx)-1]].AggregateVersion
}

func (es *EventStore) ReadEvents(ctx context.Context, aggregateID uuid.UUID) ([]domain.DomainEvent, error) {
	return es.ReadEventsFrom(ctx, aggregateID, 0)
}

func (es *EventStore) ReadEventsFrom(ctx context.Context, aggregateID uuid.UUID, afterVersion int64) ([]domain.DomainEvent, error) {
	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.DomainEvent
	for _, i := range s.aggregates[aggregateID] {
		if s.events[i].AggregateVersion > afterVersion {
			out = append(out, cloneEvent(s.events[i]))
		}
	}
	return out, nil
}

func (es *EventStore) ReadEventsAfter(ctx context.Context, afterPosition int64, limit int) ([]domain.DomainEvent, error) {
	return es.filter(limit, func(e domain.DomainEvent) bool { return e.Position > afterPosition }), nil
}

func (es *EventStore) ReadEventsByType(ctx context.Context, eventType domain.EventType, limit int) ([]domain.DomainEvent, error) {
	return es.filter(limit, func(e domain.DomainEvent) bool { return e.EventType == eventType }), nil
}

func (es *EventStore) ReadEventsByCausation(ctx context.Context, causationID string) ([]domain.DomainEvent, error) {
	return es.filter(0, func(e domain.DomainEvent) bool { return e.CausationID == causationID }), nil
}

// filter scans the log in position order. limit <= 0 means no limit.
func (es *EventStore) filter(limit int, keep func(domain.DomainEvent) bool) []domain.DomainEvent {
	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.DomainEvent
	for _, e := range s.events {
		if limit > 0 && len(out) >= limit {
			break
		}
		if keep(e) {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}

// WriteSnapshot keeps the newest snapshot per aggregate.
func (es *EventStore) WriteSnapshot(ctx context.Context, snap domain.Snapshot) error {
	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.snapshots[snap.AggregateID]; ok && existing.Version >= snap.Version {
		return nil
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = s.now()
	}
	snap.State = bytes.Clone(snap.State)
	s.snapshots[snap.AggregateID] = snap
	return nil
}

func (es *EventStore) ReadSnapshot(ctx context.Context, aggregateID uuid.UUID) (*domain.Snapshot, error) {
	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[aggregateID]
	if !ok {
		return nil, nil
	}
	snap.State = bytes.Clone(snap.State)
	return &snap, nil
}

// CorruptSnapshot overwrites a stored snapshot's state. Used to exercise the
// repository's fallback to full replay.
func (es *EventStore) CorruptSnapshot(aggregateID uuid.UUID, state []byte) {
	s := es.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.snapshots[aggregateID]; ok {
		snap.State = state
		s.snapshots[aggregateID] = snap
	}
}

func cloneEvent(e domain.DomainEvent) domain.DomainEvent {
	e.Data = bytes.Clone(e.Data)
	if len(e.Metadata) == 0 {
		e.Metadata = nil
	} else {
		e.Metadata = maps.Clone(e.Metadata)
	}
	return e
}
