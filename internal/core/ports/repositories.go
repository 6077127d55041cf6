package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EventStore is the append-only, versioned event log with its outbox and snapshots.
type EventStore interface {
	// Append writes events at expectedVersion+1.. together with one outbox row
	// each, atomically. A stale expectedVersion yields ConcurrencyConflict and no writes.
	Append(ctx context.Context, aggregateID uuid.UUID, events []domain.DomainEvent, expectedVersion int64) error
	ReadEvents(ctx context.Context, aggregateID uuid.UUID) ([]domain.DomainEvent, error)
	ReadEventsFrom(ctx context.Context, aggregateID uuid.UUID, afterVersion int64) ([]domain.DomainEvent, error)
	// ReadEventsAfter pages through all aggregates by global position.
	ReadEventsAfter(ctx context.Context, afterPosition int64, limit int) ([]domain.DomainEvent, error)
	ReadEventsByType(ctx context.Context, eventType domain.EventType, limit int) ([]domain.DomainEvent, error)
	ReadEventsByCausation(ctx context.Context, causationID string) ([]domain.DomainEvent, error)
	WriteSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	// ReadSnapshot returns nil, nil when no snapshot exists.
	ReadSnapshot(ctx context.Context, aggregateID uuid.UUID) (*domain.Snapshot, error)
}

// OutboxRepository drains the outbox. Lock, fetch and mark run in the caller's transaction.
type OutboxRepository interface {
	// AcquireRelayLock claims the relay for the rest of tx. It returns false
	// while another relay holds it, so only one relay publishes at a time and
	// one aggregate's rows can never be published out of order.
	AcquireRelayLock(ctx context.Context, tx pgx.Tx) (bool, error)
	FetchUnpublished(ctx context.Context, tx pgx.Tx, limit int) ([]domain.OutboxEntry, error)
	MarkPublished(ctx context.Context, tx pgx.Tx, eventIDs []uuid.UUID) (int64, error)
	CountUnpublished(ctx context.Context) (int64, error)
}

// WalletViewRepository is the relational detail store fed by the projector.
// Methods accepting pgx.Tx take part in the projector's ledger transaction.
type WalletViewRepository interface {
	// MarkProcessed records eventID for projector. Returns false if it was already recorded.
	MarkProcessed(ctx context.Context, tx pgx.Tx, projector string, eventID uuid.UUID) (bool, error)
	InsertWallet(ctx context.Context, tx pgx.Tx, view *domain.WalletView) error
	GetWalletForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.WalletView, error)
	// UpdateWallet only applies when view.Version is newer than the stored row.
	UpdateWallet(ctx context.Context, tx pgx.Tx, view *domain.WalletView) (bool, error)
	InsertActivity(ctx context.Context, tx pgx.Tx, activity *domain.WalletActivity) error

	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletView, error)
	ListActivity(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.WalletActivity, int64, error)
	// SumPeriod recomputes totals for subject from activity rows.
	SumPeriod(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error)
}

// DeadLetterRepository keeps events a projector could not apply.
type DeadLetterRepository interface {
	Park(ctx context.Context, event *domain.ParkedEvent) error
	CountParked(ctx context.Context, projector string) (int64, error)
}

// PeriodTotalsStore is the low-latency aggregate read store.
type PeriodTotalsStore interface {
	// Apply writes recomputed totals and the projector ledger key atomically.
	// Returns false when eventID was already in the ledger.
	Apply(ctx context.Context, projector string, eventID uuid.UUID, totals []domain.PeriodTotals) (bool, error)
	// Set writes totals without touching the ledger (read-path backfill).
	Set(ctx context.Context, totals domain.PeriodTotals) error
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error)
}

// CommandResultCache is the fast-path idempotency check for commands.
type CommandResultCache interface {
	// Get returns nil, nil when the command id is unknown.
	Get(ctx context.Context, commandID string) (*domain.CommandResult, error)
	Set(ctx context.Context, result *domain.CommandResult, ttl time.Duration) error
}

// RateLimitStore counts requests per fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp when the window resets
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
