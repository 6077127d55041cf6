package service

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletRepository loads and saves Wallet aggregates through the event store.
// Snapshots are an optimization only: a snapshot that cannot be read is
// ignored and the wallet is rebuilt from its full history.
type WalletRepository struct {
	store             ports.EventStore
	snapshotThreshold int
	log               zerolog.Logger
}

// NewWalletRepository creates a repository. A threshold of 0 disables snapshots.
func NewWalletRepository(store ports.EventStore, snapshotThreshold int, log zerolog.Logger) *WalletRepository {
	if snapshotThreshold < 0 {
		snapshotThreshold = 0
	}
	return &WalletRepository{
		store:             store,
		snapshotThreshold: snapshotThreshold,
		log:               log,
	}
}

// Load returns the current wallet or NotFound.
func (r *WalletRepository) Load(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	w, tail, err := r.load(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if w.ID() == uuid.Nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	if r.snapshotThreshold > 0 && tail >= r.snapshotThreshold {
		r.writeSnapshot(ctx, w)
	}
	return w, nil
}

func (r *WalletRepository) load(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, int, error) {
	if r.snapshotThreshold > 0 {
		if w, ok := r.fromSnapshot(ctx, walletID); ok {
			events, err := r.store.ReadEventsFrom(ctx, walletID, w.Version())
			if err != nil {
				return nil, 0, apperror.StorageFailure(fmt.Errorf("read tail: %w", err))
			}
			err = w.LoadFromHistory(events)
			if err == nil {
				return w, len(events), nil
			}
			r.log.Warn().Err(err).Str("wallet_id", walletID.String()).
				Msg("snapshot tail does not apply, replaying full history")
		}
	}

	events, err := r.store.ReadEvents(ctx, walletID)
	if err != nil {
		return nil, 0, apperror.StorageFailure(fmt.Errorf("read events: %w", err))
	}
	w := domain.NewWallet()
	if err := w.LoadFromHistory(events); err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("replay wallet %s: %w", walletID, err))
	}
	return w, len(events), nil
}

// fromSnapshot returns false when there is no usable snapshot.
func (r *WalletRepository) fromSnapshot(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, bool) {
	snap, err := r.store.ReadSnapshot(ctx, walletID)
	if err != nil {
		r.log.Warn().Err(err).Str("wallet_id", walletID.String()).Msg("snapshot read failed, replaying full history")
		return nil, false
	}
	if snap == nil {
		return nil, false
	}
	w, err := domain.WalletFromSnapshot(*snap)
	if err != nil {
		r.log.Warn().Err(err).Str("wallet_id", walletID.String()).
			Int64("snapshot_version", snap.Version).
			Msg("corrupt snapshot ignored, replaying full history")
		return nil, false
	}
	return w, true
}

// writeSnapshot is best-effort; failure is only logged.
func (r *WalletRepository) writeSnapshot(ctx context.Context, w *domain.Wallet) {
	snap, err := w.MarshalSnapshot()
	if err == nil {
		err = r.store.WriteSnapshot(ctx, snap)
	}
	if err != nil {
		r.log.Warn().Err(err).Str("wallet_id", w.ID().String()).Msg("snapshot write failed")
		return
	}
	snapshotsWrittenTotal.Inc()
	r.log.Debug().Str("wallet_id", w.ID().String()).Int64("version", snap.Version).Msg("snapshot written")
}

// Save appends the wallet's uncommitted events. On success the buffer is
// cleared; on any error, including a conflict, it is left intact.
func (r *WalletRepository) Save(ctx context.Context, w *domain.Wallet) error {
	events := w.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}
	expected := w.Version() - int64(len(events))
	if err := r.store.Append(ctx, w.ID(), events, expected); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.StorageFailure(err)
	}
	w.MarkCommitted()
	return nil
}
