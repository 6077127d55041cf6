package postgres

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertActivity records one projected event. Replays of the same event are ignored.
func (r *WalletViewRepo) InsertActivity(ctx context.Context, tx pgx.Tx, a *domain.WalletActivity) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO wallet_activity (event_id, wallet_id, user_id, event_type, version, direction,
			amount, currency, balance_after, category, reference, correlation_id, occurred_at, period)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (event_id) DO NOTHING`,
		a.EventID, a.WalletID, a.UserID, string(a.EventType), a.Version, string(a.Direction),
		a.Amount, a.Currency, a.BalanceAfter, nullString(a.Category), nullString(a.Reference),
		nullString(a.CorrelationID), a.OccurredAt, a.Period,
	)
	if err != nil {
		return fmt.Errorf("insert wallet activity: %w", err)
	}
	return nil
}

// ListActivity returns one page of a wallet's activity, newest first, and the total count.
func (r *WalletViewRepo) ListActivity(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.WalletActivity, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wallet_activity WHERE wallet_id = $1`, walletID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count wallet activity: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT event_id, wallet_id, user_id, event_type, version, direction, amount, currency,
			balance_after, category, reference, correlation_id, occurred_at, period
		FROM wallet_activity WHERE wallet_id = $1
		ORDER BY version DESC LIMIT $2 OFFSET $3`,
		walletID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet activity: %w", err)
	}
	defer rows.Close()

	var items []domain.WalletActivity
	for rows.Next() {
		var (
			a             domain.WalletActivity
			category      *string
			reference     *string
			correlationID *string
		)
		if err := rows.Scan(
			&a.EventID, &a.WalletID, &a.UserID, &a.EventType, &a.Version, &a.Direction, &a.Amount,
			&a.Currency, &a.BalanceAfter, &category, &reference, &correlationID, &a.OccurredAt, &a.Period,
		); err != nil {
			return nil, 0, fmt.Errorf("scan wallet activity row: %w", err)
		}
		a.Category = derefString(category)
		a.Reference = derefString(reference)
		a.CorrelationID = derefString(correlationID)
		a.OccurredAt = a.OccurredAt.UTC()
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wallet activity rows: %w", err)
	}
	return items, total, nil
}

// SumPeriod recomputes a subject's totals for period from the durable activity rows.
func (r *WalletViewRepo) SumPeriod(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error) {
	var (
		column string
		arg    any
	)
	switch subject.Kind {
	case domain.SubjectWallet:
		id, err := uuid.Parse(subject.ID)
		if err != nil {
			return nil, fmt.Errorf("sum period: invalid wallet id %q: %w", subject.ID, err)
		}
		column, arg = "wallet_id", id
	case domain.SubjectUser:
		column, arg = "user_id", subject.ID
	default:
		return nil, fmt.Errorf("sum period: unknown subject kind %q", subject.Kind)
	}

	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(amount) FILTER (WHERE direction = 'credit'), 0) AS credited,
		COALESCE(SUM(amount) FILTER (WHERE direction = 'debit'), 0) AS debited,
		COUNT(*) FILTER (WHERE direction <> 'none') AS movements,
		MAX(occurred_at) AS as_of
		FROM wallet_activity WHERE %s = $1 AND period = $2`, column)

	totals := &domain.PeriodTotals{Subject: subject, Period: period}
	var asOf *time.Time
	if err := r.pool.QueryRow(ctx, query, arg, period).Scan(
		&totals.Credited, &totals.Debited, &totals.Count, &asOf,
	); err != nil {
		return nil, fmt.Errorf("sum period totals: %w", err)
	}
	if asOf != nil {
		totals.AsOf = asOf.UTC()
	}
	return totals, nil
}
