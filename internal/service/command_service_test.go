package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger/config"
	"wallet-ledger/internal/adapter/storage/memory"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Every scenario runs with snapshots off and with a snapshot every two events.
var snapshotModes = map[string]int{"no snapshots": 0, "snapshot every 2": 2}

func TestCommandService_CreditThenDebit(t *testing.T) {
	for name, threshold := range snapshotModes {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(t, threshold)
			id := l.openWallet(t, "user-1")

			_, err := l.credit(ctx, "credit-1", id, 10000)
			require.NoError(t, err)
			res, err := l.debit(ctx, "debit-1", id, 3000)
			require.NoError(t, err)
			assert.Equal(t, int64(4), res.Version)
			assert.False(t, res.Duplicate)

			st := l.state(t, id)
			assert.Equal(t, int64(7000), st.Balance.Amount)
			assert.Equal(t, int64(4), st.Version)
			assert.Equal(t, domain.WalletStatusActive, st.Status)
		})
	}
}

func TestCommandService_InsufficientBalance(t *testing.T) {
	for name, threshold := range snapshotModes {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(t, threshold)
			id := l.openWallet(t, "user-1")

			_, err := l.credit(ctx, "credit-1", id, 5000)
			require.NoError(t, err)
			_, err = l.debit(ctx, "debit-1", id, 10000)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientBalance))

			st := l.state(t, id)
			assert.Equal(t, int64(5000), st.Balance.Amount)
			assert.Equal(t, int64(3), st.Version)
		})
	}
}

func TestCommandService_CreditSuspendedWallet(t *testing.T) {
	for name, threshold := range snapshotModes {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(t, threshold)
			id := l.openWallet(t, "user-1")

			_, err := l.commands.SuspendWallet(ctx, domain.SuspendWallet{CommandID: "suspend-1", WalletID: id, Reason: "fraud"})
			require.NoError(t, err)

			_, err = l.credit(ctx, "credit-1", id, 100)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeWalletNotActive))

			st := l.state(t, id)
			assert.Equal(t, int64(0), st.Balance.Amount)
			assert.Equal(t, domain.WalletStatusSuspended, st.Status)
		})
	}
}

func TestCommandService_CloseRequiresZeroBalance(t *testing.T) {
	for name, threshold := range snapshotModes {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := newLedger(t, threshold)
			id := l.openWallet(t, "user-1")

			_, err := l.credit(ctx, "credit-1", id, 100)
			require.NoError(t, err)

			_, err = l.commands.CloseWallet(ctx, domain.CloseWallet{CommandID: "close-1", WalletID: id, Reason: "user request"})
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeNonZeroBalanceOnClose))

			_, err = l.debit(ctx, "debit-1", id, 100)
			require.NoError(t, err)
			_, err = l.commands.CloseWallet(ctx, domain.CloseWallet{CommandID: "close-2", WalletID: id, Reason: "user request"})
			require.NoError(t, err)

			st := l.state(t, id)
			assert.Equal(t, domain.WalletStatusClosed, st.Status)
			assert.Equal(t, int64(0), st.Balance.Amount)
		})
	}
}

func TestCommandService_CreateTwiceRejected(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	_, err := l.commands.CreateWallet(ctx, domain.CreateWallet{
		CommandID: "create-again",
		WalletID:  id,
		UserID:    "user-1",
		Currency:  "USD",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeAlreadyExists))
}

func TestCommandService_UnknownWallet(t *testing.T) {
	l := newLedger(t, 0)

	_, err := l.credit(context.Background(), "credit-1", uuid.New(), 100)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestCommandService_CreateWithoutWalletIDRejectedBeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockEventStore(ctrl)
	cache := mocks.NewMockCommandResultCache(ctrl)
	svc := NewWalletCommandService(NewWalletRepository(store, 0, zerolog.Nop()), store, cache, config.EventStoreConfig{}, zerolog.Nop())

	_, err := svc.CreateWallet(context.Background(), domain.CreateWallet{
		CommandID: "create-1",
		UserID:    "user-1",
		Currency:  "USD",
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation), "got %v", err)
}

func TestCommandService_ValidationRejectedBeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockEventStore(ctrl)
	cache := mocks.NewMockCommandResultCache(ctrl)
	svc := NewWalletCommandService(NewWalletRepository(store, 0, zerolog.Nop()), store, cache, config.EventStoreConfig{}, zerolog.Nop())

	tests := []struct {
		name string
		cmd  domain.CreditWallet
		code string
	}{
		{"missing command id", domain.CreditWallet{WalletID: uuid.New(), Amount: 1, Currency: "USD", Source: domain.CreditSourceDeposit}, apperror.CodeValidation},
		{"zero amount", domain.CreditWallet{CommandID: "c", WalletID: uuid.New(), Currency: "USD", Source: domain.CreditSourceDeposit}, apperror.CodeInvalidAmount},
		{"bad currency", domain.CreditWallet{CommandID: "c", WalletID: uuid.New(), Amount: 1, Currency: "usd", Source: domain.CreditSourceDeposit}, apperror.CodeValidation},
		{"bad source", domain.CreditWallet{CommandID: "c", WalletID: uuid.New(), Amount: 1, Currency: "USD", Source: "gift"}, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreditWallet(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCommandService_DuplicateFromCache(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	first, err := l.credit(ctx, "credit-1", id, 250)
	require.NoError(t, err)

	again, err := l.credit(ctx, "credit-1", id, 250)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, first.Version, again.Version)
	assert.Equal(t, first.EventIDs, again.EventIDs)

	st := l.state(t, id)
	assert.Equal(t, int64(250), st.Balance.Amount)
	assert.Equal(t, int64(3), st.Version)
}

func TestCommandService_DuplicateFromEventLogAfterCacheExpiry(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	first, err := l.credit(ctx, "credit-1", id, 250)
	require.NoError(t, err)
	l.cache.Forget("credit-1")

	again, err := l.credit(ctx, "credit-1", id, 250)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, first.EventIDs, again.EventIDs)
	assert.Equal(t, first.Version, again.Version)
	assert.Equal(t, int64(250), l.state(t, id).Balance.Amount)

	cached, err := l.cache.Get(ctx, "credit-1")
	require.NoError(t, err)
	require.NotNil(t, cached, "the event log hit is cached again")
	assert.False(t, cached.Duplicate)
}

func TestCommandService_CacheErrorFallsThroughToEventLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockEventStore(ctrl)
	cache := mocks.NewMockCommandResultCache(ctrl)
	svc := NewWalletCommandService(NewWalletRepository(store, 0, zerolog.Nop()), store, cache, config.EventStoreConfig{}, zerolog.Nop())

	walletID := uuid.New()
	prior := domain.DomainEvent{EventID: uuid.New(), AggregateID: walletID, AggregateVersion: 3, CausationID: "credit-1"}

	cache.EXPECT().Get(gomock.Any(), "credit-1").Return(nil, errors.New("redis down"))
	store.EXPECT().ReadEventsByCausation(gomock.Any(), "credit-1").Return([]domain.DomainEvent{prior}, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), defaultResultTTL).Return(errors.New("redis down"))

	res, err := svc.CreditWallet(context.Background(), domain.CreditWallet{
		CommandID: "credit-1",
		WalletID:  walletID,
		Amount:    10,
		Currency:  "USD",
		Source:    domain.CreditSourceDeposit,
	})
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, int64(3), res.Version)
	assert.Equal(t, walletID, res.AggregateID)
}

func TestCommandService_CausationLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockEventStore(ctrl)
	cache := mocks.NewMockCommandResultCache(ctrl)
	svc := NewWalletCommandService(NewWalletRepository(store, 0, zerolog.Nop()), store, cache, config.EventStoreConfig{}, zerolog.Nop())

	cache.EXPECT().Get(gomock.Any(), "debit-1").Return(nil, nil)
	store.EXPECT().ReadEventsByCausation(gomock.Any(), "debit-1").Return(nil, errors.New("timeout"))

	_, err := svc.DebitWallet(context.Background(), domain.DebitWallet{
		CommandID:   "debit-1",
		WalletID:    uuid.New(),
		Amount:      10,
		Currency:    "USD",
		Destination: domain.DebitDestinationPayment,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeStorageFailure))
}

// racingStore lets another writer append to the wallet right before each of
// the next races appends.
type racingStore struct {
	*memory.EventStore
	races int
	race  func(ctx context.Context, walletID uuid.UUID)
}

func (r *racingStore) Append(ctx context.Context, aggregateID uuid.UUID, events []domain.DomainEvent, expectedVersion int64) error {
	if r.races > 0 {
		r.races--
		r.race(ctx, aggregateID)
	}
	return r.EventStore.Append(ctx, aggregateID, events, expectedVersion)
}

func newRacingLedger(t *testing.T, races int) (*ledger, *racingStore, *WalletCommandServiceImpl) {
	l := newLedger(t, 0)
	racer := &racingStore{EventStore: l.events, races: races}
	racer.race = func(ctx context.Context, walletID uuid.UUID) {
		w, err := l.repo.Load(ctx, walletID)
		require.NoError(t, err)
		require.NoError(t, w.Credit(domain.Money{Amount: 1, Currency: "USD"}, domain.CreditSourceCashback, domain.EntryOptions{}))
		w.StampUncommitted("racer-"+uuid.NewString(), "")
		require.NoError(t, l.repo.Save(ctx, w))
	}
	svc := NewWalletCommandService(NewWalletRepository(racer, 0, zerolog.Nop()), racer, l.cache,
		config.EventStoreConfig{ConflictRetries: 3}, zerolog.Nop())
	return l, racer, svc
}

func TestCommandService_ConflictRetriedWithReload(t *testing.T) {
	ctx := context.Background()
	l, _, svc := newRacingLedger(t, 2)
	id := l.openWallet(t, "user-1")

	res, err := svc.CreditWallet(ctx, domain.CreditWallet{
		CommandID: "credit-1",
		WalletID:  id,
		Amount:    100,
		Currency:  "USD",
		Source:    domain.CreditSourceDeposit,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Version, "two racing credits landed first")

	st := l.state(t, id)
	assert.Equal(t, int64(102), st.Balance.Amount)
	assert.Equal(t, int64(5), st.Version)
}

func TestCommandService_ConflictRetriesExhausted(t *testing.T) {
	ctx := context.Background()
	l, _, svc := newRacingLedger(t, 10)
	id := l.openWallet(t, "user-1")

	_, err := svc.CreditWallet(ctx, domain.CreditWallet{
		CommandID: "credit-1",
		WalletID:  id,
		Amount:    100,
		Currency:  "USD",
		Source:    domain.CreditSourceDeposit,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConcurrencyConflict(err))

	st := l.state(t, id)
	assert.Equal(t, int64(4), st.Balance.Amount, "only the four racing credits landed")

	events, err := l.events.ReadEventsByCausation(ctx, "credit-1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCommandService_StampsCausationAndCorrelation(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	_, err := l.commands.CreditWallet(ctx, domain.CreditWallet{
		CommandID:     "credit-1",
		WalletID:      id,
		Amount:        5,
		Currency:      "USD",
		Source:        domain.CreditSourceRefund,
		CorrelationID: "order-77",
	})
	require.NoError(t, err)

	events, err := l.events.ReadEventsByCausation(ctx, "credit-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "order-77", events[0].CorrelationID)

	created, err := l.events.ReadEventsByType(ctx, domain.EventWalletCreated, 10)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "create-"+id.String(), created[0].CorrelationID, "correlation defaults to the command id")
}

// lateDuplicateStore hides a command's events from the first causation
// lookups, as if a concurrent duplicate committed right after them.
type lateDuplicateStore struct {
	*memory.EventStore
	hidden int
}

func (s *lateDuplicateStore) ReadEventsByCausation(ctx context.Context, causationID string) ([]domain.DomainEvent, error) {
	if s.hidden > 0 {
		s.hidden--
		return nil, nil
	}
	return s.EventStore.ReadEventsByCausation(ctx, causationID)
}

func TestCommandService_DuplicateCommittedAfterLookup(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	first, err := l.credit(ctx, "credit-1", id, 100)
	require.NoError(t, err)

	late := &lateDuplicateStore{EventStore: l.events, hidden: 1}
	svc := NewWalletCommandService(NewWalletRepository(late, 0, zerolog.Nop()), late,
		memory.NewCommandCache(memory.NewStore()), config.EventStoreConfig{}, zerolog.Nop())

	res, err := svc.CreditWallet(ctx, domain.CreditWallet{
		CommandID: "credit-1",
		WalletID:  id,
		Amount:    100,
		Currency:  "USD",
		Source:    domain.CreditSourceDeposit,
	})
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, first.Version, res.Version)
	assert.Equal(t, first.EventIDs, res.EventIDs)

	st := l.state(t, id)
	assert.Equal(t, int64(100), st.Balance.Amount, "credited once")
	assert.Equal(t, int64(3), st.Version)
}
