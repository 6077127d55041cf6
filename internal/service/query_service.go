package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// WalletQueryServiceImpl implements ports.WalletQueryService on the read models.
type WalletQueryServiceImpl struct {
	views  ports.WalletViewRepository
	totals ports.PeriodTotalsStore
	now    func() time.Time
	log    zerolog.Logger
}

// NewWalletQueryService creates a query service.
func NewWalletQueryService(views ports.WalletViewRepository, totals ports.PeriodTotalsStore, log zerolog.Logger) *WalletQueryServiceImpl {
	return &WalletQueryServiceImpl{
		views:  views,
		totals: totals,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

func (s *WalletQueryServiceImpl) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletView, error) {
	view, err := s.views.GetWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.StorageFailure(fmt.Errorf("get wallet view: %w", err))
	}
	if view == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return view, nil
}

// ListWalletEvents pages a wallet's projected activity, newest first.
func (s *WalletQueryServiceImpl) ListWalletEvents(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.WalletActivity, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.views.ListActivity(ctx, walletID, limit, offset)
	if err != nil {
		return nil, 0, apperror.StorageFailure(fmt.Errorf("list wallet activity: %w", err))
	}
	if items == nil {
		items = []domain.WalletActivity{}
	}
	return items, total, nil
}

// GetCurrentPeriodTotal reads the aggregate store and falls back to summing
// the relational rows. A fallback result is written back best-effort.
func (s *WalletQueryServiceImpl) GetCurrentPeriodTotal(ctx context.Context, subject domain.Subject) (*domain.PeriodTotals, error) {
	if !subject.Kind.Valid() || subject.ID == "" {
		return nil, apperror.Validation("invalid totals subject")
	}
	if subject.Kind == domain.SubjectWallet {
		if _, err := uuid.Parse(subject.ID); err != nil {
			return nil, apperror.Validation("wallet id must be a UUID")
		}
	}
	period := domain.PeriodOf(s.now())

	cached, err := s.totals.Get(ctx, subject, period)
	if err != nil {
		s.log.Warn().Err(err).Str("subject", subject.Key(period)).Msg("totals store read failed, recomputing")
	}
	if cached != nil {
		return cached, nil
	}

	totals, err := s.views.SumPeriod(ctx, subject, period)
	if err != nil {
		return nil, apperror.StorageFailure(fmt.Errorf("sum period totals: %w", err))
	}
	if err := s.totals.Set(ctx, *totals); err != nil {
		s.log.Warn().Err(err).Str("subject", subject.Key(period)).Msg("totals backfill failed")
	}
	return totals, nil
}
