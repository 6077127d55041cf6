package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"
)

// DeadLetterRepo implements ports.DeadLetterRepository.
type DeadLetterRepo struct {
	pool Pool
}

func NewDeadLetterRepo(pool Pool) *DeadLetterRepo {
	return &DeadLetterRepo{pool: pool}
}

// Park stores an event the projector gave up on. Parking the same event again
// bumps its attempt count.
func (r *DeadLetterRepo) Park(ctx context.Context, p *domain.ParkedEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO parked_events (projector, event_id, event_type, payload, reason, attempts, parked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (projector, event_id) DO UPDATE
		SET reason = EXCLUDED.reason,
			attempts = parked_events.attempts + EXCLUDED.attempts,
			parked_at = EXCLUDED.parked_at`,
		p.Projector, p.EventID, nullString(p.EventType), p.Payload, p.Reason, p.Attempts, p.ParkedAt,
	)
	if err != nil {
		return fmt.Errorf("park event: %w", err)
	}
	return nil
}

// CountParked returns how many events projector has parked.
func (r *DeadLetterRepo) CountParked(ctx context.Context, projector string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parked_events WHERE projector = $1`, projector).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count parked events: %w", err)
	}
	return n, nil
}
