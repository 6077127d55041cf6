package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// apply runs the relational projector for e's type inside tx. It returns the
// wallet's user id when known without another read.
func (s *ProjectionServiceImpl) apply(ctx context.Context, tx pgx.Tx, e domain.DomainEvent) (string, error) {
	switch e.EventType {
	case domain.EventWalletCreated:
		return s.applyCreated(ctx, tx, e)
	case domain.EventWalletActivated:
		return s.applyStatus(ctx, tx, e, domain.WalletStatusActive)
	case domain.EventWalletSuspended:
		return s.applyStatus(ctx, tx, e, domain.WalletStatusSuspended)
	case domain.EventWalletClosed:
		return s.applyStatus(ctx, tx, e, domain.WalletStatusClosed)
	case domain.EventWalletCredited:
		var d domain.WalletCreditedData
		if err := e.DecodeData(&d); err != nil {
			return "", err
		}
		return s.applyMovement(ctx, tx, e, domain.DirectionCredit, d.Amount, d.Currency, d.BalanceAfter, string(d.Source), d.Reference)
	case domain.EventWalletDebited:
		var d domain.WalletDebitedData
		if err := e.DecodeData(&d); err != nil {
			return "", err
		}
		return s.applyMovement(ctx, tx, e, domain.DirectionDebit, d.Amount, d.Currency, d.BalanceAfter, string(d.Destination), d.Reference)
	default:
		return "", fmt.Errorf("no projector for event type %q", e.EventType)
	}
}

func (s *ProjectionServiceImpl) applyCreated(ctx context.Context, tx pgx.Tx, e domain.DomainEvent) (string, error) {
	var d domain.WalletCreatedData
	if err := e.DecodeData(&d); err != nil {
		return "", err
	}
	view := &domain.WalletView{
		WalletID:   e.AggregateID,
		UserID:     d.UserID,
		MerchantID: d.MerchantID,
		WalletType: d.WalletType,
		Currency:   d.Currency,
		Status:     domain.WalletStatusPending,
		Version:    e.AggregateVersion,
		CreatedAt:  e.Timestamp,
		UpdatedAt:  e.Timestamp,
	}
	if err := s.views.InsertWallet(ctx, tx, view); err != nil {
		return "", fmt.Errorf("insert wallet view: %w", err)
	}
	if err := s.views.InsertActivity(ctx, tx, activityOf(e, d.UserID, d.Currency, domain.DirectionNone, 0, 0, "", "")); err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	return d.UserID, nil
}

func (s *ProjectionServiceImpl) applyStatus(ctx context.Context, tx pgx.Tx, e domain.DomainEvent, status domain.WalletStatus) (string, error) {
	view, err := s.lockView(ctx, tx, e)
	if err != nil {
		return "", err
	}
	view.Status = status
	if status == domain.WalletStatusClosed {
		view.Balance = 0
	}
	if err := s.updateView(ctx, tx, view, e); err != nil {
		return "", err
	}
	act := activityOf(e, view.UserID, view.Currency, domain.DirectionNone, 0, view.Balance, string(status), "")
	if err := s.views.InsertActivity(ctx, tx, act); err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	return view.UserID, nil
}

func (s *ProjectionServiceImpl) applyMovement(
	ctx context.Context,
	tx pgx.Tx,
	e domain.DomainEvent,
	dir domain.Direction,
	amount int64,
	currency string,
	balanceAfter int64,
	category string,
	reference string,
) (string, error) {
	view, err := s.lockView(ctx, tx, e)
	if err != nil {
		return "", err
	}
	view.Balance = balanceAfter
	if err := s.updateView(ctx, tx, view, e); err != nil {
		return "", err
	}
	act := activityOf(e, view.UserID, currency, dir, amount, balanceAfter, category, reference)
	if err := s.views.InsertActivity(ctx, tx, act); err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	return view.UserID, nil
}

func (s *ProjectionServiceImpl) lockView(ctx context.Context, tx pgx.Tx, e domain.DomainEvent) (*domain.WalletView, error) {
	view, err := s.views.GetWalletForUpdate(ctx, tx, e.AggregateID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet view: %w", err)
	}
	if view == nil {
		return nil, fmt.Errorf("%w: %s", errViewMissing, e.AggregateID)
	}
	return view, nil
}

// updateView only moves the row forward; a stale event leaves it untouched.
func (s *ProjectionServiceImpl) updateView(ctx context.Context, tx pgx.Tx, view *domain.WalletView, e domain.DomainEvent) error {
	view.Version = e.AggregateVersion
	view.UpdatedAt = e.Timestamp
	applied, err := s.views.UpdateWallet(ctx, tx, view)
	if err != nil {
		return fmt.Errorf("update wallet view: %w", err)
	}
	if !applied {
		s.log.Debug().Str("event_id", e.EventID.String()).Int64("version", e.AggregateVersion).Msg("stale event, wallet view kept")
	}
	return nil
}

func activityOf(
	e domain.DomainEvent,
	userID string,
	currency string,
	dir domain.Direction,
	amount int64,
	balanceAfter int64,
	category string,
	reference string,
) *domain.WalletActivity {
	return &domain.WalletActivity{
		EventID:       e.EventID,
		WalletID:      e.AggregateID,
		UserID:        userID,
		EventType:     e.EventType,
		Version:       e.AggregateVersion,
		Direction:     dir,
		Amount:        amount,
		Currency:      currency,
		BalanceAfter:  balanceAfter,
		Category:      category,
		Reference:     reference,
		CorrelationID: e.CorrelationID,
		OccurredAt:    e.Timestamp,
		Period:        domain.PeriodOf(e.Timestamp),
	}
}
