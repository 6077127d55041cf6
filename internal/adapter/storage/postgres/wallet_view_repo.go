package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletViewColumns = `wallet_id, user_id, merchant_id, wallet_type, currency, status, balance, version, created_at, updated_at`

// WalletViewRepo implements ports.WalletViewRepository, the relational read model.
type WalletViewRepo struct {
	pool Pool
}

// NewWalletViewRepo creates a new WalletViewRepo.
func NewWalletViewRepo(pool Pool) *WalletViewRepo {
	return &WalletViewRepo{pool: pool}
}

// MarkProcessed inserts into the processed-event ledger inside tx.
// Returns false when the event was already processed by projector.
func (r *WalletViewRepo) MarkProcessed(ctx context.Context, tx pgx.Tx, projector string, eventID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO processed_events (projector, event_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		projector, eventID,
	)
	if err != nil {
		return false, fmt.Errorf("mark event processed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertWallet creates the view row for a new wallet. A row that already
// exists is left as is.
func (r *WalletViewRepo) InsertWallet(ctx context.Context, tx pgx.Tx, v *domain.WalletView) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO wallet_views (`+walletViewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (wallet_id) DO NOTHING`,
		v.WalletID, v.UserID, nullString(v.MerchantID), string(v.WalletType), v.Currency,
		string(v.Status), v.Balance, v.Version, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet view: %w", err)
	}
	return nil
}

// GetWalletForUpdate fetches a wallet view with a row lock.
// This MUST be called within a transaction.
func (r *WalletViewRepo) GetWalletForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.WalletView, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+walletViewColumns+` FROM wallet_views WHERE wallet_id = $1 FOR UPDATE`,
		walletID,
	)
	v, err := scanWalletView(row)
	if err != nil {
		return nil, fmt.Errorf("get wallet view for update: %w", err)
	}
	return v, nil
}

// UpdateWallet writes status and balance when v is newer than the stored row.
// Returns false when the stored row is already at or past v.Version.
func (r *WalletViewRepo) UpdateWallet(ctx context.Context, tx pgx.Tx, v *domain.WalletView) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE wallet_views SET status = $2, balance = $3, version = $4, updated_at = $5
		WHERE wallet_id = $1 AND version < $4`,
		v.WalletID, string(v.Status), v.Balance, v.Version, v.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update wallet view: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetWallet fetches a wallet view (without locking).
func (r *WalletViewRepo) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletView, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+walletViewColumns+` FROM wallet_views WHERE wallet_id = $1`,
		walletID,
	)
	v, err := scanWalletView(row)
	if err != nil {
		return nil, fmt.Errorf("get wallet view: %w", err)
	}
	return v, nil
}

// scanWalletView returns nil, nil when the row does not exist.
func scanWalletView(row pgx.Row) (*domain.WalletView, error) {
	v := &domain.WalletView{}
	var merchantID *string
	err := row.Scan(
		&v.WalletID, &v.UserID, &merchantID, &v.WalletType, &v.Currency,
		&v.Status, &v.Balance, &v.Version, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	v.MerchantID = derefString(merchantID)
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}
