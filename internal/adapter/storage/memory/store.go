// Package memory holds in-process implementations of the storage ports.
// It backs the "memory" database driver and the service tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store is the shared state behind every memory adapter. Transactions are
// serialized; writes made inside one are undone on rollback.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	position   int64
	events     []domain.DomainEvent
	byID       map[uuid.UUID]struct{}
	aggregates map[uuid.UUID][]int
	snapshots  map[uuid.UUID]domain.Snapshot

	outboxSeq int64
	outbox    []domain.OutboxEntry

	processed   map[string]struct{}
	views       map[uuid.UUID]domain.WalletView
	activity    []domain.WalletActivity
	activityIDs map[uuid.UUID]struct{}
	parked      map[string]domain.ParkedEvent

	totals   map[string]domain.PeriodTotals
	ledger   map[string]time.Time
	commands map[string]cachedResult
	counters map[string]int64

	now func() time.Time
}

type cachedResult struct {
	result    domain.CommandResult
	expiresAt time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:        make(map[uuid.UUID]struct{}),
		aggregates:  make(map[uuid.UUID][]int),
		snapshots:   make(map[uuid.UUID]domain.Snapshot),
		processed:   make(map[string]struct{}),
		views:       make(map[uuid.UUID]domain.WalletView),
		activityIDs: make(map[uuid.UUID]struct{}),
		parked:      make(map[string]domain.ParkedEvent),
		totals:      make(map[string]domain.PeriodTotals),
		ledger:      make(map[string]time.Time),
		commands:    make(map[string]cachedResult),
		counters:    make(map[string]int64),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for expirations.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

var errForeignTx = errors.New("memory: transaction was not started by this store")

// Tx implements pgx.Tx for the memory store. Only Commit and Rollback are
// usable; the embedded interface is nil.
type Tx struct {
	pgx.Tx
	store *Store
	undo  []func()
	done  bool
}

// Commit keeps the transaction's writes.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.store.txMu.Unlock()
	return nil
}

// Rollback reverts the transaction's writes in reverse order.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.undo = nil
	t.store.txMu.Unlock()
	return nil
}

// onRollback registers fn; callers hold store.mu.
func (t *Tx) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

func (s *Store) txOf(tx pgx.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, errForeignTx
	}
	if t.done {
		return nil, pgx.ErrTxClosed
	}
	return t, nil
}

// Transactor implements ports.DBTransactor.
type Transactor struct {
	store *Store
}

func NewTransactor(s *Store) *Transactor {
	return &Transactor{store: s}
}

// Begin waits for any running transaction to finish.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.txMu.Lock()
	return &Tx{store: t.store}, nil
}

// HealthCheck implements ports.HealthChecker. The store is always reachable.
type HealthCheck struct {
	name string
}

func NewHealthCheck(name string) *HealthCheck {
	return &HealthCheck{name: name}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (h *HealthCheck) Name() string {
	return h.name
}
