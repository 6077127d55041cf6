package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/telemetry"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

const eventColumns = `position, event_id, aggregate_id, aggregate_type, event_type, schema_version,
	version, data, metadata, causation_id, correlation_id, occurred_at`

// EventStore implements ports.EventStore on PostgreSQL.
type EventStore struct {
	pool Pool
}

// NewEventStore creates a new EventStore.
func NewEventStore(pool Pool) *EventStore {
	return &EventStore{pool: pool}
}

// Append writes events and their outbox rows in one transaction guarded by
// the aggregate's current version.
func (s *EventStore) Append(ctx context.Context, aggregateID uuid.UUID, events []domain.DomainEvent, expectedVersion int64) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperror.StorageFailure(fmt.Errorf("begin append tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var current int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM events WHERE aggregate_id = $1`,
		aggregateID,
	).Scan(&current)
	if err != nil {
		return apperror.StorageFailure(fmt.Errorf("read current version: %w", err))
	}
	if current != expectedVersion {
		return apperror.ErrConcurrencyConflict(aggregateID.String(), expectedVersion, current)
	}

	traceparent, tracestate := telemetry.TraceContextStrings(ctx)

	for i, e := range events {
		want := expectedVersion + int64(i) + 1
		if e.AggregateID != aggregateID || e.AggregateVersion != want {
			return apperror.InternalError(fmt.Errorf(
				"event %s targets %s@%d, expected %s@%d", e.EventID, e.AggregateID, e.AggregateVersion, aggregateID, want))
		}

		metadata, err := marshalMetadata(e.Metadata)
		if err != nil {
			return apperror.InternalError(err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO events (event_id, aggregate_id, aggregate_type, event_type, schema_version,
				version, data, metadata, causation_id, correlation_id, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			e.EventID, e.AggregateID, e.AggregateType, string(e.EventType), e.SchemaVersion,
			e.AggregateVersion, []byte(e.Data), metadata, nullString(e.CausationID), nullString(e.CorrelationID), e.Timestamp,
		)
		if err != nil {
			return s.mapAppendError(ctx, aggregateID, expectedVersion, fmt.Errorf("insert event: %w", err))
		}

		entry, err := domain.NewOutboxEntry(e)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("build outbox entry: %w", err))
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO outbox (event_id, aggregate_id, event_type, payload, created_at, traceparent, tracestate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			entry.EventID, entry.AggregateID, string(entry.EventType), entry.Payload, entry.CreatedAt,
			nullString(traceparent), nullString(tracestate),
		)
		if err != nil {
			return apperror.StorageFailure(fmt.Errorf("insert outbox: %w", err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return s.mapAppendError(ctx, aggregateID, expectedVersion, fmt.Errorf("commit append: %w", err))
	}
	return nil
}

// mapAppendError turns a racing writer's unique violation into a conflict.
func (s *EventStore) mapAppendError(ctx context.Context, aggregateID uuid.UUID, expected int64, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		actual := expected + 1
		var current int64
		if qerr := s.pool.QueryRow(ctx,
			`SELECT COALESCE(MAX(version), 0) FROM events WHERE aggregate_id = $1`, aggregateID,
		).Scan(&current); qerr == nil {
			actual = current
		}
		return apperror.ErrConcurrencyConflict(aggregateID.String(), expected, actual)
	}
	return apperror.StorageFailure(err)
}

// ReadEvents returns the full history of one aggregate in version order.
func (s *EventStore) ReadEvents(ctx context.Context, aggregateID uuid.UUID) ([]domain.DomainEvent, error) {
	return s.ReadEventsFrom(ctx, aggregateID, 0)
}

// ReadEventsFrom returns events with version > afterVersion.
func (s *EventStore) ReadEventsFrom(ctx context.Context, aggregateID uuid.UUID, afterVersion int64) ([]domain.DomainEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE aggregate_id = $1 AND version > $2 ORDER BY version`,
		aggregateID, afterVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return scanEvents(rows)
}

// ReadEventsAfter pages through the global log by position.
func (s *EventStore) ReadEventsAfter(ctx context.Context, afterPosition int64, limit int) ([]domain.DomainEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE position > $1 ORDER BY position LIMIT $2`,
		afterPosition, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read events after position: %w", err)
	}
	return scanEvents(rows)
}

func (s *EventStore) ReadEventsByType(ctx context.Context, eventType domain.EventType, limit int) ([]domain.DomainEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_type = $1 ORDER BY position LIMIT $2`,
		string(eventType), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read events by type: %w", err)
	}
	return scanEvents(rows)
}

// ReadEventsByCausation finds the events a command already produced.
func (s *EventStore) ReadEventsByCausation(ctx context.Context, causationID string) ([]domain.DomainEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE causation_id = $1 ORDER BY position`,
		causationID,
	)
	if err != nil {
		return nil, fmt.Errorf("read events by causation: %w", err)
	}
	return scanEvents(rows)
}

// WriteSnapshot upserts a snapshot. An older version never replaces a newer one.
func (s *EventStore) WriteSnapshot(ctx context.Context, snap domain.Snapshot) error {
	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (aggregate_id, aggregate_type, state, version, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (aggregate_id) DO UPDATE
		SET state = EXCLUDED.state, version = EXCLUDED.version, created_at = EXCLUDED.created_at
		WHERE snapshots.version < EXCLUDED.version`,
		snap.AggregateID, snap.AggregateType, []byte(snap.State), snap.Version, createdAt,
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot returns nil, nil when the aggregate has no snapshot.
func (s *EventStore) ReadSnapshot(ctx context.Context, aggregateID uuid.UUID) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var state []byte
	err := s.pool.QueryRow(ctx,
		`SELECT aggregate_id, aggregate_type, state, version, created_at FROM snapshots WHERE aggregate_id = $1`,
		aggregateID,
	).Scan(&snap.AggregateID, &snap.AggregateType, &state, &snap.Version, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap.State = state
	snap.CreatedAt = snap.CreatedAt.UTC()
	return snap, nil
}

func scanEvents(rows pgx.Rows) ([]domain.DomainEvent, error) {
	defer rows.Close()

	var events []domain.DomainEvent
	for rows.Next() {
		var (
			e             domain.DomainEvent
			eventType     string
			data          []byte
			metadata      []byte
			causationID   *string
			correlationID *string
		)
		if err := rows.Scan(
			&e.Position, &e.EventID, &e.AggregateID, &e.AggregateType, &eventType, &e.SchemaVersion,
			&e.AggregateVersion, &data, &metadata, &causationID, &correlationID, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.EventType = domain.EventType(eventType)
		e.Data = data
		e.CausationID = derefString(causationID)
		e.CorrelationID = derefString(correlationID)
		e.Timestamp = e.Timestamp.UTC()
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("decode event metadata: %w", err)
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal event metadata: %w", err)
	}
	return raw, nil
}
