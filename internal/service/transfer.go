package service

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TransferFunds debits the source and then credits the destination. The legs
// are separate aggregates with their own command ids, so a retried transfer
// dedupes each leg. If the credit fails after the debit committed, the
// source is credited back with source "reversal".
func (s *WalletCommandServiceImpl) TransferFunds(ctx context.Context, cmd domain.TransferFunds) (*ports.TransferResult, error) {
	if err := cmd.Validate(); err != nil {
		commandsTotal.WithLabelValues("transfer_funds", "rejected").Inc()
		return nil, err
	}
	correlationID := cmd.CorrelationID
	if correlationID == "" {
		correlationID = cmd.CommandID
	}

	ctx, span := s.tracer.Start(ctx, "wallet.command.transfer_funds")
	span.SetAttributes(
		attribute.String("command.id", cmd.CommandID),
		attribute.String("correlation.id", correlationID),
	)
	defer span.End()

	debit, err := s.DebitWallet(ctx, domain.DebitWallet{
		CommandID:            cmd.DebitLegID(),
		WalletID:             cmd.SourceWalletID,
		ActorID:              cmd.ActorID,
		Amount:               cmd.Amount,
		Currency:             cmd.Currency,
		Destination:          domain.DebitDestinationTransferOut,
		Reference:            cmd.Reference,
		Description:          cmd.Description,
		CounterpartyWalletID: cmd.DestinationWalletID.String(),
		CorrelationID:        correlationID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "debit leg failed")
		return nil, err
	}

	// A reversal already on record means an earlier attempt gave the money
	// back. Crediting now would create funds.
	reversed, err := s.store.ReadEventsByCausation(ctx, cmd.ReversalLegID())
	if err != nil {
		return nil, apperror.StorageFailure(fmt.Errorf("lookup transfer reversal: %w", err))
	}
	if len(reversed) > 0 {
		err := apperror.ErrTransferFailed(correlationID, true, errors.New("transfer was already reversed"))
		span.SetStatus(codes.Error, "already reversed")
		return nil, err
	}

	credit, creditErr := s.CreditWallet(ctx, domain.CreditWallet{
		CommandID:            cmd.CreditLegID(),
		WalletID:             cmd.DestinationWalletID,
		ActorID:              cmd.ActorID,
		Amount:               cmd.Amount,
		Currency:             cmd.Currency,
		Source:               domain.CreditSourceTransferIn,
		Reference:            cmd.Reference,
		Description:          cmd.Description,
		CounterpartyWalletID: cmd.SourceWalletID.String(),
		CorrelationID:        correlationID,
	})
	if creditErr == nil {
		commandsTotal.WithLabelValues("transfer_funds", "ok").Inc()
		return &ports.TransferResult{CorrelationID: correlationID, Debit: debit, Credit: credit}, nil
	}

	span.RecordError(creditErr)
	span.SetStatus(codes.Error, "credit leg failed")
	s.log.Warn().Err(creditErr).
		Str("correlation_id", correlationID).
		Str("source_wallet_id", cmd.SourceWalletID.String()).
		Msg("transfer credit failed, reversing debit")

	_, compErr := s.CreditWallet(ctx, domain.CreditWallet{
		CommandID:            cmd.ReversalLegID(),
		WalletID:             cmd.SourceWalletID,
		ActorID:              cmd.ActorID,
		Amount:               cmd.Amount,
		Currency:             cmd.Currency,
		Source:               domain.CreditSourceReversal,
		Reference:            cmd.Reference,
		Description:          "reversal of failed transfer",
		CounterpartyWalletID: cmd.DestinationWalletID.String(),
		CorrelationID:        correlationID,
	})
	if compErr != nil {
		transferCompensationsTotal.WithLabelValues("failed").Inc()
		commandsTotal.WithLabelValues("transfer_funds", "error").Inc()
		s.log.Error().Err(compErr).
			Str("correlation_id", correlationID).
			Str("source_wallet_id", cmd.SourceWalletID.String()).
			Int64("amount", cmd.Amount).
			Msg("transfer compensation failed, manual repair required")
		return nil, apperror.ErrTransferFailed(correlationID, false, errors.Join(creditErr, compErr))
	}

	transferCompensationsTotal.WithLabelValues("compensated").Inc()
	commandsTotal.WithLabelValues("transfer_funds", "rejected").Inc()
	return nil, apperror.ErrTransferFailed(correlationID, true, creditErr)
}
