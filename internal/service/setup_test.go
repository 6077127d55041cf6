package service

import (
	"context"
	"testing"

	"wallet-ledger/config"
	"wallet-ledger/internal/adapter/storage/memory"
	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// ledger wires the services to one in-memory store.
type ledger struct {
	store       *memory.Store
	events      *memory.EventStore
	outbox      *memory.OutboxRepo
	views       *memory.WalletViewRepo
	totals      *memory.PeriodTotalsStore
	cache       *memory.CommandCache
	deadLetters *memory.DeadLetterRepo
	transactor  *memory.Transactor

	repo       *WalletRepository
	commands   *WalletCommandServiceImpl
	projection *ProjectionServiceImpl
	queries    *WalletQueryServiceImpl
}

func newLedger(t *testing.T, snapshotThreshold int) *ledger {
	t.Helper()
	s := memory.NewStore()
	l := &ledger{
		store:       s,
		events:      memory.NewEventStore(s),
		outbox:      memory.NewOutboxRepo(s),
		views:       memory.NewWalletViewRepo(s),
		totals:      memory.NewPeriodTotalsStore(s, 0),
		cache:       memory.NewCommandCache(s),
		deadLetters: memory.NewDeadLetterRepo(s),
		transactor:  memory.NewTransactor(s),
	}
	log := zerolog.Nop()
	l.repo = NewWalletRepository(l.events, snapshotThreshold, log)
	l.commands = NewWalletCommandService(l.repo, l.events, l.cache, config.EventStoreConfig{
		SnapshotThreshold: snapshotThreshold,
		ConflictRetries:   3,
	}, log)
	l.projection = NewProjectionService(l.transactor, l.views, l.totals, l.deadLetters, l.events,
		config.ProjectionConfig{MaxAttempts: 2}, log)
	l.queries = NewWalletQueryService(l.views, l.totals, log)
	return l
}

// openWallet creates and activates a USD wallet for userID.
func (l *ledger) openWallet(t *testing.T, userID string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	_, err := l.commands.CreateWallet(ctx, domain.CreateWallet{
		CommandID: "create-" + id.String(),
		WalletID:  id,
		UserID:    userID,
		Currency:  "USD",
	})
	require.NoError(t, err)
	_, err = l.commands.ActivateWallet(ctx, domain.ActivateWallet{
		CommandID: "activate-" + id.String(),
		WalletID:  id,
		Reason:    "kyc passed",
	})
	require.NoError(t, err)
	return id
}

func (l *ledger) credit(ctx context.Context, commandID string, walletID uuid.UUID, amount int64) (*domain.CommandResult, error) {
	return l.commands.CreditWallet(ctx, domain.CreditWallet{
		CommandID: commandID,
		WalletID:  walletID,
		Amount:    amount,
		Currency:  "USD",
		Source:    domain.CreditSourceDeposit,
	})
}

func (l *ledger) debit(ctx context.Context, commandID string, walletID uuid.UUID, amount int64) (*domain.CommandResult, error) {
	return l.commands.DebitWallet(ctx, domain.DebitWallet{
		CommandID:   commandID,
		WalletID:    walletID,
		Amount:      amount,
		Currency:    "USD",
		Destination: domain.DebitDestinationPayment,
	})
}

// state replays walletID straight from the event store.
func (l *ledger) state(t *testing.T, walletID uuid.UUID) domain.WalletState {
	t.Helper()
	events, err := l.events.ReadEvents(context.Background(), walletID)
	require.NoError(t, err)
	w := domain.NewWallet()
	require.NoError(t, w.LoadFromHistory(events))
	return w.State()
}

// relay publishes the outbox and then feeds every delivered payload to the
// projector in publish order. Handling happens after the publisher's
// transaction ends because memory transactions are serialized.
func (l *ledger) relay(t *testing.T) int {
	t.Helper()
	ctx := context.Background()
	bus := &recordingBus{}
	pub := NewOutboxPublisher(l.transactor, l.outbox, bus, config.OutboxConfig{BatchSize: 50}, zerolog.Nop())
	total := 0
	for {
		n, err := pub.PublishBatch(ctx)
		require.NoError(t, err)
		if n == 0 {
			break
		}
		total += n
	}
	for _, payload := range bus.delivered {
		require.NoError(t, l.projection.Handle(ctx, payload))
	}
	return total
}

// recordingBus keeps published payloads and can be told to fail.
type recordingBus struct {
	delivered [][]byte
	fail      error
}

func (b *recordingBus) Publish(ctx context.Context, entries []domain.OutboxEntry) error {
	if b.fail != nil {
		return b.fail
	}
	for _, e := range entries {
		b.delivered = append(b.delivered, e.Payload)
	}
	return nil
}
