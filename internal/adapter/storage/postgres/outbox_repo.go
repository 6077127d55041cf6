package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OutboxRepo implements ports.OutboxRepository.
type OutboxRepo struct {
	pool Pool
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// relayLockKey is the advisory lock held by the active relay.
const relayLockKey int64 = 0x77616c6c6574

// AcquireRelayLock takes the relay's transaction-scoped advisory lock without
// waiting. Postgres releases it at commit or rollback.
func (r *OutboxRepo) AcquireRelayLock(ctx context.Context, tx pgx.Tx) (bool, error) {
	var locked bool
	if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, relayLockKey).Scan(&locked); err != nil {
		return false, fmt.Errorf("acquire relay lock: %w", err)
	}
	return locked, nil
}

// FetchUnpublished locks up to limit pending rows in id order. Callers hold
// the relay lock first; skipping locked rows alone would let a second relay
// publish an aggregate's later event ahead of an earlier one.
// This MUST be called within a transaction.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, tx pgx.Tx, limit int) ([]domain.OutboxEntry, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, event_id, aggregate_id, event_type, payload, created_at, traceparent, tracestate
		FROM outbox
		WHERE published = FALSE
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished outbox: %w", err)
	}
	defer rows.Close()

	var entries []domain.OutboxEntry
	for rows.Next() {
		var (
			e           domain.OutboxEntry
			eventType   string
			traceparent *string
			tracestate  *string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.AggregateID, &eventType, &e.Payload,
			&e.CreatedAt, &traceparent, &tracestate); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		e.EventType = domain.EventType(eventType)
		e.Traceparent = derefString(traceparent)
		e.Tracestate = derefString(tracestate)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return entries, nil
}

// MarkPublished flags rows as published. Rows already published are left
// untouched, so the returned count only covers first-time publishes.
func (r *OutboxRepo) MarkPublished(ctx context.Context, tx pgx.Tx, eventIDs []uuid.UUID) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	tag, err := tx.Exec(ctx,
		`UPDATE outbox SET published = TRUE, published_at = NOW()
		WHERE event_id = ANY($1) AND published = FALSE`,
		eventIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("mark outbox published: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountUnpublished returns the relay backlog.
func (r *OutboxRepo) CountUnpublished(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published = FALSE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unpublished outbox: %w", err)
	}
	return n, nil
}
