package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func walletTotals(t *testing.T, l *ledger, walletID uuid.UUID) *domain.PeriodTotals {
	t.Helper()
	subject := domain.Subject{Kind: domain.SubjectWallet, ID: walletID.String()}
	got, err := l.totals.Get(context.Background(), subject, domain.PeriodOf(time.Now()))
	require.NoError(t, err)
	require.NotNil(t, got)
	return got
}

func TestProjection_MaterializesBothStores(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "credit-1", id, 1000)
	require.NoError(t, err)
	_, err = l.debit(ctx, "debit-1", id, 300)
	require.NoError(t, err)

	assert.Equal(t, 4, l.relay(t))

	view, err := l.views.GetWallet(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, int64(700), view.Balance)
	assert.Equal(t, int64(4), view.Version)
	assert.Equal(t, domain.WalletStatusActive, view.Status)
	assert.Equal(t, "user-1", view.UserID)

	items, total, err := l.views.ListActivity(ctx, id, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, items, 4)
	assert.Equal(t, domain.DirectionDebit, items[0].Direction)
	assert.Equal(t, int64(300), items[0].Amount)

	wt := walletTotals(t, l, id)
	assert.Equal(t, int64(1000), wt.Credited)
	assert.Equal(t, int64(300), wt.Debited)
	assert.Equal(t, int64(2), wt.Count)
	assert.Equal(t, int64(700), wt.Net())

	stats := l.projection.Stats()
	assert.Equal(t, int64(4), stats.EventsProcessed)
	assert.Equal(t, int64(1), stats.ByEventType[string(domain.EventWalletCredited)])
	assert.NotNil(t, stats.LastEventAt)
}

func TestProjection_RedeliveryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "credit-1", id, 1000)
	require.NoError(t, err)

	bus := &recordingBus{}
	pub := NewOutboxPublisher(l.transactor, l.outbox, bus, config.OutboxConfig{BatchSize: 10}, zerolog.Nop())
	_, err = pub.PublishBatch(ctx)
	require.NoError(t, err)

	for round := 0; round < 3; round++ {
		for _, payload := range bus.delivered {
			require.NoError(t, l.projection.Handle(ctx, payload))
		}
	}

	view, err := l.views.GetWallet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), view.Balance)

	_, total, err := l.views.ListActivity(ctx, id, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	wt := walletTotals(t, l, id)
	assert.Equal(t, int64(1000), wt.Credited)
	assert.Equal(t, int64(1), wt.Count)

	stats := l.projection.Stats()
	assert.Equal(t, int64(3), stats.EventsProcessed)
	assert.Equal(t, int64(6), stats.Duplicates)
}

func TestProjection_UserTotalsSpanWallets(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	a := l.openWallet(t, "user-1")
	b := l.openWallet(t, "user-1")
	other := l.openWallet(t, "user-2")
	_, err := l.credit(ctx, "c-a", a, 100)
	require.NoError(t, err)
	_, err = l.credit(ctx, "c-b", b, 250)
	require.NoError(t, err)
	_, err = l.credit(ctx, "c-o", other, 999)
	require.NoError(t, err)
	l.relay(t)

	got, err := l.totals.Get(ctx, domain.Subject{Kind: domain.SubjectUser, ID: "user-1"}, domain.PeriodOf(time.Now()))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(350), got.Credited)
	assert.Equal(t, int64(2), got.Count)
}

func TestProjection_BadPayloadParked(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)

	require.NoError(t, l.projection.Handle(ctx, []byte("{not json")))
	require.NoError(t, l.projection.Handle(ctx, []byte(`{"eventId":"`+uuid.NewString()+`"}`)))

	n, err := l.deadLetters.CountParked(ctx, ProjectorRelational)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats := l.projection.Stats()
	assert.Equal(t, int64(2), stats.Parked)
	assert.Equal(t, int64(2), stats.Errors)
}

func TestProjection_UnknownTypeSkipped(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)

	payload, err := json.Marshal(domain.DomainEvent{
		EventID:          uuid.New(),
		AggregateID:      uuid.New(),
		EventType:        "wallet.renamed",
		AggregateVersion: 7,
		Timestamp:        time.Now().UTC(),
		Data:             json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	require.NoError(t, l.projection.Handle(ctx, payload))
	assert.Equal(t, int64(1), l.projection.Stats().Skipped)

	n, err := l.deadLetters.CountParked(ctx, ProjectorRelational)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProjection_EventForMissingWalletParkedAfterRetries(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "credit-1", id, 10)
	require.NoError(t, err)

	credits, err := l.events.ReadEventsByCausation(ctx, "credit-1")
	require.NoError(t, err)
	require.Len(t, credits, 1)
	payload, err := json.Marshal(credits[0])
	require.NoError(t, err)

	require.NoError(t, l.projection.Handle(ctx, payload), "parked events are acknowledged")

	parked, ok := l.deadLetters.Parked(ProjectorRelational, credits[0].EventID.String())
	require.True(t, ok)
	assert.Equal(t, 2, parked.Attempts)
	assert.Equal(t, string(domain.EventWalletCredited), parked.EventType)
	assert.Contains(t, parked.Reason, errViewMissing.Error())

	processed, err := l.transactor.Begin(ctx)
	require.NoError(t, err)
	fresh, err := l.views.MarkProcessed(ctx, processed, ProjectorRelational, credits[0].EventID)
	require.NoError(t, err)
	assert.True(t, fresh, "a failed projection leaves no ledger entry behind")
	require.NoError(t, processed.Rollback(ctx))
}

// flakyTotals fails the first n Apply calls.
type flakyTotals struct {
	ports.PeriodTotalsStore
	failures int
	calls    int
}

func (f *flakyTotals) Apply(ctx context.Context, projector string, eventID uuid.UUID, totals []domain.PeriodTotals) (bool, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return false, errors.New("redis timeout")
	}
	return f.PeriodTotalsStore.Apply(ctx, projector, eventID, totals)
}

func TestProjection_TotalsFailureRetriedWithoutReapplyingRelational(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "credit-1", id, 40)
	require.NoError(t, err)

	bus := &recordingBus{}
	pub := NewOutboxPublisher(l.transactor, l.outbox, bus, config.OutboxConfig{BatchSize: 10}, zerolog.Nop())
	_, err = pub.PublishBatch(ctx)
	require.NoError(t, err)

	flaky := &flakyTotals{PeriodTotalsStore: l.totals}
	projection := NewProjectionService(l.transactor, l.views, flaky, l.deadLetters, l.events,
		config.ProjectionConfig{MaxAttempts: 3}, zerolog.Nop())

	require.NoError(t, projection.Handle(ctx, bus.delivered[0]))
	require.NoError(t, projection.Handle(ctx, bus.delivered[1]))

	flaky.failures = 1
	require.NoError(t, projection.Handle(ctx, bus.delivered[2]))
	assert.Equal(t, 4, flaky.calls)

	view, err := l.views.GetWallet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(40), view.Balance)
	_, total, err := l.views.ListActivity(ctx, id, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	wt := walletTotals(t, l, id)
	assert.Equal(t, int64(40), wt.Credited)

	stats := projection.Stats()
	assert.Equal(t, int64(3), stats.EventsProcessed)
	assert.Zero(t, stats.Parked)
}

func TestProjection_Rebuild(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	a := l.openWallet(t, "user-1")
	b := l.openWallet(t, "user-2")
	_, err := l.credit(ctx, "c-a", a, 500)
	require.NoError(t, err)
	_, err = l.commands.TransferFunds(ctx, transfer("tx-1", a, b, 200))
	require.NoError(t, err)

	n, err := l.projection.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	va, err := l.views.GetWallet(ctx, a)
	require.NoError(t, err)
	vb, err := l.views.GetWallet(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(300), va.Balance)
	assert.Equal(t, int64(200), vb.Balance)

	n, err = l.projection.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, int64(7), l.projection.Stats().Duplicates)
	assert.Equal(t, int64(500), walletTotals(t, l, a).Credited)
	assert.Equal(t, int64(200), walletTotals(t, l, a).Debited)
}

func TestProjection_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := newLedger(t, 0)

	db := mocks.NewMockHealthChecker(ctrl)
	cache := mocks.NewMockHealthChecker(ctrl)
	lag := mocks.NewMockLagReporter(ctrl)

	db.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	db.EXPECT().Name().Return("postgresql").AnyTimes()
	cache.EXPECT().Name().Return("redis").AnyTimes()

	projection := NewProjectionService(l.transactor, l.views, l.totals, l.deadLetters, l.events,
		config.ProjectionConfig{MaxLag: 100}, zerolog.Nop(), db, cache).WithLagReporter(lag)

	t.Run("healthy", func(t *testing.T) {
		cache.EXPECT().Ping(gomock.Any()).Return(nil)
		lag.EXPECT().Lag().Return(int64(3))

		h := projection.Health(context.Background())
		assert.Equal(t, "healthy", h.Status)
		assert.Equal(t, "up", h.Dependencies["postgresql"])
		assert.Equal(t, "up", h.Dependencies["redis"])
		assert.Equal(t, int64(3), h.Lag)
	})

	t.Run("dependency down", func(t *testing.T) {
		cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
		lag.EXPECT().Lag().Return(int64(0))

		h := projection.Health(context.Background())
		assert.Equal(t, "degraded", h.Status)
		assert.Equal(t, "down: connection refused", h.Dependencies["redis"])
	})

	t.Run("lagging", func(t *testing.T) {
		cache.EXPECT().Ping(gomock.Any()).Return(nil)
		lag.EXPECT().Lag().Return(int64(5000))

		h := projection.Health(context.Background())
		assert.Equal(t, "degraded", h.Status)
	})

	t.Run("stats report lag", func(t *testing.T) {
		lag.EXPECT().Lag().Return(int64(42))
		assert.Equal(t, int64(42), projection.Stats().Lag)
	})
}
