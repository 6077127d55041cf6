package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultResultTTL = 24 * time.Hour

// WalletCommandServiceImpl implements ports.WalletCommandService.
type WalletCommandServiceImpl struct {
	repo         *WalletRepository
	store        ports.EventStore
	cache        ports.CommandResultCache
	retries      int
	retryBackoff time.Duration
	resultTTL    time.Duration
	tracer       trace.Tracer
	log          zerolog.Logger
}

// NewWalletCommandService creates the command service.
func NewWalletCommandService(
	repo *WalletRepository,
	store ports.EventStore,
	cache ports.CommandResultCache,
	cfg config.EventStoreConfig,
	log zerolog.Logger,
) *WalletCommandServiceImpl {
	ttl := cfg.CommandCacheTTL
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	retries := cfg.ConflictRetries
	if retries < 0 {
		retries = 0
	}
	return &WalletCommandServiceImpl{
		repo:         repo,
		store:        store,
		cache:        cache,
		retries:      retries,
		retryBackoff: cfg.RetryBackoff,
		resultTTL:    ttl,
		tracer:       otel.Tracer("wallet-ledger/service"),
		log:          log,
	}
}

func (s *WalletCommandServiceImpl) CreateWallet(ctx context.Context, cmd domain.CreateWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "create_wallet", cmd, cmd.WalletID, cmd.CorrelationID, true, func(w *domain.Wallet) error {
		return w.Create(cmd.WalletID, cmd.UserID, cmd.MerchantID, domain.CreateOptions{
			Currency:   cmd.Currency,
			WalletType: cmd.WalletType,
			KYCLevel:   cmd.KYCLevel,
			Metadata:   cmd.Metadata,
		})
	})
}

func (s *WalletCommandServiceImpl) ActivateWallet(ctx context.Context, cmd domain.ActivateWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "activate_wallet", cmd, cmd.WalletID, cmd.CorrelationID, false, func(w *domain.Wallet) error {
		return w.Activate(cmd.Reason, cmd.ActorID)
	})
}

func (s *WalletCommandServiceImpl) SuspendWallet(ctx context.Context, cmd domain.SuspendWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "suspend_wallet", cmd, cmd.WalletID, cmd.CorrelationID, false, func(w *domain.Wallet) error {
		return w.Suspend(cmd.Reason, cmd.ActorID)
	})
}

func (s *WalletCommandServiceImpl) CloseWallet(ctx context.Context, cmd domain.CloseWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "close_wallet", cmd, cmd.WalletID, cmd.CorrelationID, false, func(w *domain.Wallet) error {
		return w.Close(cmd.Reason, cmd.ActorID)
	})
}

func (s *WalletCommandServiceImpl) CreditWallet(ctx context.Context, cmd domain.CreditWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "credit_wallet", cmd, cmd.WalletID, cmd.CorrelationID, false, func(w *domain.Wallet) error {
		return w.Credit(domain.Money{Amount: cmd.Amount, Currency: cmd.Currency}, cmd.Source, domain.EntryOptions{
			Reference:            cmd.Reference,
			Description:          cmd.Description,
			CounterpartyWalletID: cmd.CounterpartyWalletID,
			Metadata:             cmd.Metadata,
		})
	})
}

func (s *WalletCommandServiceImpl) DebitWallet(ctx context.Context, cmd domain.DebitWallet) (*domain.CommandResult, error) {
	return s.execute(ctx, "debit_wallet", cmd, cmd.WalletID, cmd.CorrelationID, false, func(w *domain.Wallet) error {
		return w.Debit(domain.Money{Amount: cmd.Amount, Currency: cmd.Currency}, cmd.Destination, domain.EntryOptions{
			Reference:            cmd.Reference,
			Description:          cmd.Description,
			CounterpartyWalletID: cmd.CounterpartyWalletID,
			Metadata:             cmd.Metadata,
		})
	})
}

// execute runs validate, dedupe, load, decide and save. A concurrency
// conflict reloads the wallet and decides again, up to s.retries times.
func (s *WalletCommandServiceImpl) execute(
	ctx context.Context,
	name string,
	cmd domain.Command,
	walletID uuid.UUID,
	correlationID string,
	create bool,
	decide func(w *domain.Wallet) error,
) (res *domain.CommandResult, err error) {
	ctx, span := s.tracer.Start(ctx, "wallet.command."+name, trace.WithAttributes(
		attribute.String("command.id", cmd.ID()),
		attribute.String("wallet.id", walletID.String()),
	))
	start := time.Now()
	outcome := "ok"
	defer func() {
		commandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		commandsTotal.WithLabelValues(name, outcome).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("wallet.version", res.Version))
		}
		span.End()
	}()

	if err := cmd.Validate(); err != nil {
		outcome = "rejected"
		return nil, err
	}
	if correlationID == "" {
		correlationID = cmd.ID()
	}

	for attempt := 0; ; attempt++ {
		prior, err := s.lookup(ctx, cmd.ID())
		if err != nil {
			outcome = "error"
			return nil, err
		}
		if prior != nil {
			outcome = "duplicate"
			return prior, nil
		}

		res, err := s.attempt(ctx, cmd.ID(), walletID, correlationID, create, decide)
		if err == nil && res.Duplicate {
			s.remember(ctx, res)
			outcome = "duplicate"
			return res, nil
		}
		if err == nil {
			s.remember(ctx, res)
			s.log.Info().
				Str("command", name).
				Str("command_id", cmd.ID()).
				Str("wallet_id", walletID.String()).
				Int64("version", res.Version).
				Msg("command applied")
			return res, nil
		}

		if !apperror.IsConcurrencyConflict(err) {
			outcome = outcomeOf(err)
			return nil, err
		}
		if attempt >= s.retries {
			outcome = "conflict"
			s.log.Warn().Err(err).Str("command_id", cmd.ID()).Int("attempts", attempt+1).Msg("command gave up after conflicts")
			return nil, err
		}

		conflictRetriesTotal.WithLabelValues(name).Inc()
		s.log.Debug().Str("command_id", cmd.ID()).Int("attempt", attempt+1).Msg("concurrency conflict, reloading")
		if err := sleepCtx(ctx, time.Duration(attempt+1)*s.retryBackoff); err != nil {
			outcome = "error"
			return nil, err
		}
	}
}

func (s *WalletCommandServiceImpl) attempt(
	ctx context.Context,
	commandID string,
	walletID uuid.UUID,
	correlationID string,
	create bool,
	decide func(w *domain.Wallet) error,
) (*domain.CommandResult, error) {
	w, err := s.repo.Load(ctx, walletID)
	if err != nil {
		if !create || !apperror.HasCode(err, apperror.CodeNotFound) {
			return nil, err
		}
		w = domain.NewWallet()
	} else {
		// A concurrent duplicate may have committed between lookup and load.
		prior, err := s.store.ReadEventsByCausation(ctx, commandID)
		if err != nil {
			return nil, apperror.StorageFailure(fmt.Errorf("lookup command %s: %w", commandID, err))
		}
		if len(prior) > 0 {
			res := domain.ResultFromEvents(commandID, prior)
			return &res, nil
		}
	}

	if err := decide(w); err != nil {
		return nil, err
	}
	w.StampUncommitted(commandID, correlationID)
	events := w.UncommittedEvents()

	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}

	res := domain.ResultFromEvents(commandID, events)
	res.Duplicate = false
	return &res, nil
}

// lookup finds a command that already ran: cache first, then the event log.
func (s *WalletCommandServiceImpl) lookup(ctx context.Context, commandID string) (*domain.CommandResult, error) {
	cached, err := s.cache.Get(ctx, commandID)
	if err != nil {
		s.log.Warn().Err(err).Str("command_id", commandID).Msg("command cache lookup failed, falling through to event store")
	}
	if cached != nil {
		cached.Duplicate = true
		return cached, nil
	}

	events, err := s.store.ReadEventsByCausation(ctx, commandID)
	if err != nil {
		return nil, apperror.StorageFailure(fmt.Errorf("lookup command %s: %w", commandID, err))
	}
	if len(events) == 0 {
		return nil, nil
	}
	res := domain.ResultFromEvents(commandID, events)
	s.remember(ctx, &res)
	return &res, nil
}

// remember caches a result best-effort.
func (s *WalletCommandServiceImpl) remember(ctx context.Context, res *domain.CommandResult) {
	stored := *res
	stored.Duplicate = false
	if err := s.cache.Set(ctx, &stored, s.resultTTL); err != nil {
		s.log.Warn().Err(err).Str("command_id", res.CommandID).Msg("failed to cache command result")
	}
}

func outcomeOf(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
		return "rejected"
	}
	return "error"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
