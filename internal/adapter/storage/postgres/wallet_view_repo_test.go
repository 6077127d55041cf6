package postgres

import (
	"context"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView() *domain.WalletView {
	at := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.WalletView{
		WalletID:   uuid.New(),
		UserID:     "user-1",
		WalletType: domain.WalletTypePersonal,
		Currency:   "USD",
		Status:     domain.WalletStatusPending,
		Version:    1,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func walletViewColumnNames() []string {
	return []string{"wallet_id", "user_id", "merchant_id", "wallet_type", "currency", "status", "balance", "version", "created_at", "updated_at"}
}

func walletViewRow(v *domain.WalletView) *pgxmock.Rows {
	return pgxmock.NewRows(walletViewColumnNames()).AddRow(
		v.WalletID, v.UserID, (*string)(nil), v.WalletType, v.Currency,
		v.Status, v.Balance, v.Version, v.CreatedAt, v.UpdatedAt,
	)
}

func beginMockTx(t *testing.T, mock pgxmock.PgxPoolIface) pgx.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletViewRepo_MarkProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	eventID := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO processed_events .+ ON CONFLICT DO NOTHING").
		WithArgs("relational", eventID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	fresh, err := repo.MarkProcessed(context.Background(), tx, "relational", eventID)
	require.NoError(t, err)
	assert.True(t, fresh)

	mock.ExpectExec("INSERT INTO processed_events .+ ON CONFLICT DO NOTHING").
		WithArgs("relational", eventID).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	fresh, err = repo.MarkProcessed(context.Background(), tx, "relational", eventID)
	require.NoError(t, err)
	assert.False(t, fresh, "redelivered event must be reported as duplicate")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_InsertWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	v := newTestView()
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallet_views .+ ON CONFLICT \\(wallet_id\\) DO NOTHING").
		WithArgs(v.WalletID, v.UserID, (*string)(nil), "personal", "USD", "pending", int64(0), int64(1), v.CreatedAt, v.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.InsertWallet(context.Background(), tx, v))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_GetWalletForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	v := newTestView()
	tx := beginMockTx(t, mock)

	mock.ExpectQuery("SELECT .+ FROM wallet_views WHERE wallet_id .+ FOR UPDATE").
		WithArgs(v.WalletID).
		WillReturnRows(walletViewRow(v))

	got, err := repo.GetWalletForUpdate(context.Background(), tx, v.WalletID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v.UserID, got.UserID)
	assert.Empty(t, got.MerchantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_UpdateWallet_VersionGuard(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	v := newTestView()
	v.Status = domain.WalletStatusActive
	v.Version = 2
	tx := beginMockTx(t, mock)

	mock.ExpectExec("UPDATE wallet_views SET .+ WHERE wallet_id = .+ AND version <").
		WithArgs(v.WalletID, "active", int64(0), int64(2), v.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	applied, err := repo.UpdateWallet(context.Background(), tx, v)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_GetWallet_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM wallet_views WHERE wallet_id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := NewWalletViewRepo(mock).GetWallet(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_InsertActivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	at := time.Now().UTC().Truncate(time.Microsecond)
	a := &domain.WalletActivity{
		EventID:      uuid.New(),
		WalletID:     uuid.New(),
		UserID:       "user-1",
		EventType:    domain.EventWalletCredited,
		Version:      3,
		Direction:    domain.DirectionCredit,
		Amount:       500,
		Currency:     "USD",
		BalanceAfter: 500,
		Category:     "deposit",
		OccurredAt:   at,
		Period:       domain.PeriodOf(at),
	}
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallet_activity .+ ON CONFLICT \\(event_id\\) DO NOTHING").
		WithArgs(a.EventID, a.WalletID, "user-1", "wallet.credited", int64(3), "credit",
			int64(500), "USD", int64(500), pgxmock.AnyArg(), (*string)(nil), (*string)(nil), at, a.Period).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.InsertActivity(context.Background(), tx, a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_ListActivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	walletID := uuid.New()
	at := time.Now().UTC().Truncate(time.Microsecond)
	reference := "order-9"

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM wallet_activity WHERE wallet_id").
		WithArgs(walletID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT .+ FROM wallet_activity WHERE wallet_id .+ ORDER BY version DESC LIMIT .+ OFFSET").
		WithArgs(walletID, 2, 0).
		WillReturnRows(pgxmock.NewRows([]string{"event_id", "wallet_id", "user_id", "event_type", "version", "direction",
			"amount", "currency", "balance_after", "category", "reference", "correlation_id", "occurred_at", "period"}).
			AddRow(uuid.New(), walletID, "user-1", domain.EventWalletDebited, int64(4), domain.DirectionDebit,
				int64(300), "USD", int64(700), (*string)(nil), &reference, (*string)(nil), at, domain.PeriodOf(at)))

	items, total, err := repo.ListActivity(context.Background(), walletID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "order-9", items[0].Reference)
	assert.Equal(t, domain.DirectionDebit, items[0].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletViewRepo_SumPeriod(t *testing.T) {
	tests := []struct {
		name    string
		subject domain.Subject
		column  string
	}{
		{"wallet", domain.Subject{Kind: domain.SubjectWallet, ID: uuid.NewString()}, "wallet_id"},
		{"user", domain.Subject{Kind: domain.SubjectUser, ID: "user-1"}, "user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			at := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
			mock.ExpectQuery("FROM wallet_activity WHERE " + tt.column + " = \\$1 AND period = \\$2").
				WithArgs(pgxmock.AnyArg(), "2026-10").
				WillReturnRows(pgxmock.NewRows([]string{"credited", "debited", "movements", "as_of"}).
					AddRow(int64(10000), int64(3000), int64(2), &at))

			totals, err := NewWalletViewRepo(mock).SumPeriod(context.Background(), tt.subject, "2026-10")
			require.NoError(t, err)
			assert.Equal(t, int64(10000), totals.Credited)
			assert.Equal(t, int64(3000), totals.Debited)
			assert.Equal(t, int64(7000), totals.Net())
			assert.Equal(t, int64(2), totals.Count)
			assert.Equal(t, at, totals.AsOf)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWalletViewRepo_SumPeriod_InvalidSubject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletViewRepo(mock)
	_, err = repo.SumPeriod(context.Background(), domain.Subject{Kind: domain.SubjectWallet, ID: "not-a-uuid"}, "2026-10")
	assert.Error(t, err)
	_, err = repo.SumPeriod(context.Background(), domain.Subject{Kind: "merchant", ID: "m"}, "2026-10")
	assert.Error(t, err)
}
