package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestQueryService_GetWallet(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")

	_, err := l.queries.GetWallet(ctx, id)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound), "not visible before projection")

	l.relay(t)

	view, err := l.queries.GetWallet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.WalletStatusActive, view.Status)
	assert.Equal(t, "USD", view.Currency)
}

func TestQueryService_ListWalletEventsPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	views := mocks.NewMockWalletViewRepository(ctrl)
	totals := mocks.NewMockPeriodTotalsStore(ctrl)
	svc := NewWalletQueryService(views, totals, zerolog.Nop())

	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name          string
		limit, offset int
		wantLimit     int
		wantOffset    int
	}{
		{"defaults", 0, 0, defaultPageSize, 0},
		{"capped", 500, 10, maxPageSize, 10},
		{"negative offset", 5, -3, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views.EXPECT().ListActivity(ctx, id, tt.wantLimit, tt.wantOffset).Return(nil, int64(0), nil)

			items, total, err := svc.ListWalletEvents(ctx, id, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.Zero(t, total)
		})
	}
}

func TestQueryService_ListWalletEventsStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	views := mocks.NewMockWalletViewRepository(ctrl)
	svc := NewWalletQueryService(views, mocks.NewMockPeriodTotalsStore(ctrl), zerolog.Nop())

	views.EXPECT().ListActivity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("pool closed"))

	_, _, err := svc.ListWalletEvents(context.Background(), uuid.New(), 10, 0)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeStorageFailure))
}

func TestQueryService_PeriodTotalSubjectValidation(t *testing.T) {
	l := newLedger(t, 0)
	ctx := context.Background()

	for _, subject := range []domain.Subject{
		{Kind: "merchant", ID: "m-1"},
		{Kind: domain.SubjectUser, ID: ""},
		{Kind: domain.SubjectWallet, ID: "not-a-uuid"},
	} {
		_, err := l.queries.GetCurrentPeriodTotal(ctx, subject)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeValidation), "subject %+v", subject)
	}
}

func TestQueryService_PeriodTotalFromAggregateStore(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "c1", id, 900)
	require.NoError(t, err)
	l.relay(t)

	got, err := l.queries.GetCurrentPeriodTotal(ctx, domain.Subject{Kind: domain.SubjectWallet, ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(900), got.Credited)
	assert.Equal(t, domain.PeriodOf(time.Now()), got.Period)

	user, err := l.queries.GetCurrentPeriodTotal(ctx, domain.Subject{Kind: domain.SubjectUser, ID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), user.Credited)
}

func TestQueryService_PeriodTotalMissRecomputesAndBackfills(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 0)
	id := l.openWallet(t, "user-1")
	_, err := l.credit(ctx, "c1", id, 900)
	require.NoError(t, err)
	_, err = l.debit(ctx, "d1", id, 100)
	require.NoError(t, err)
	l.relay(t)

	subject := domain.Subject{Kind: domain.SubjectWallet, ID: id.String()}
	period := domain.PeriodOf(time.Now())
	l.totals.Delete(subject, period)

	got, err := l.queries.GetCurrentPeriodTotal(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, int64(900), got.Credited)
	assert.Equal(t, int64(100), got.Debited)
	assert.Equal(t, int64(2), got.Count)

	cached, err := l.totals.Get(ctx, subject, period)
	require.NoError(t, err)
	require.NotNil(t, cached, "recomputed totals are written back")
	assert.Equal(t, int64(800), cached.Net())
}

func TestQueryService_PeriodTotalStoreErrorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	views := mocks.NewMockWalletViewRepository(ctrl)
	totals := mocks.NewMockPeriodTotalsStore(ctrl)
	svc := NewWalletQueryService(views, totals, zerolog.Nop())

	ctx := context.Background()
	subject := domain.Subject{Kind: domain.SubjectUser, ID: "user-1"}
	period := domain.PeriodOf(time.Now())
	sum := &domain.PeriodTotals{Subject: subject, Period: period, Credited: 10, Count: 1}

	totals.EXPECT().Get(ctx, subject, period).Return(nil, errors.New("redis down"))
	views.EXPECT().SumPeriod(ctx, subject, period).Return(sum, nil)
	totals.EXPECT().Set(ctx, *sum).Return(errors.New("redis down"))

	got, err := svc.GetCurrentPeriodTotal(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, sum, got)
}
