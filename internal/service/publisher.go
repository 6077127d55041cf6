package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OutboxPublisher relays outbox entries to the event bus. Rows are marked
// published only after the whole batch was acknowledged; a failed batch is
// retried in full on the next tick, so delivery is at-least-once.
type OutboxPublisher struct {
	transactor ports.DBTransactor
	outbox     ports.OutboxRepository
	bus        ports.EventBus
	pollEvery  time.Duration
	batchSize  int
	maxBacklog int64
	log        zerolog.Logger
}

// NewOutboxPublisher creates a relay. Zero config values fall back to defaults.
func NewOutboxPublisher(
	transactor ports.DBTransactor,
	outbox ports.OutboxRepository,
	bus ports.EventBus,
	cfg config.OutboxConfig,
	log zerolog.Logger,
) *OutboxPublisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &OutboxPublisher{
		transactor: transactor,
		outbox:     outbox,
		bus:        bus,
		pollEvery:  cfg.PollInterval,
		batchSize:  cfg.BatchSize,
		maxBacklog: int64(cfg.BatchSize) * 10,
		log:        log,
	}
}

// Run polls until ctx is cancelled. A full batch is followed immediately by
// another poll so a backlog drains without waiting for the ticker.
func (p *OutboxPublisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	p.log.Info().Dur("poll_interval", p.pollEvery).Int("batch_size", p.batchSize).Msg("outbox publisher started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("outbox publisher stopped")
			return nil
		case <-ticker.C:
		}

		for {
			n, err := p.PublishBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.log.Error().Err(err).Msg("outbox publish failed")
				break
			}
			if n < p.batchSize {
				break
			}
		}
	}
}

// PublishBatch publishes one batch and returns how many entries it marked.
func (p *OutboxPublisher) PublishBatch(ctx context.Context) (int, error) {
	tx, err := p.transactor.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin outbox tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	locked, err := p.outbox.AcquireRelayLock(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("lock outbox relay: %w", err)
	}
	if !locked {
		p.log.Debug().Msg("another relay is publishing, skipping tick")
		return 0, nil
	}

	entries, err := p.outbox.FetchUnpublished(ctx, tx, p.batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox: %w", err)
	}
	if len(entries) == 0 {
		outboxBacklog.Set(0)
		return 0, tx.Commit(ctx)
	}

	if err := p.bus.Publish(ctx, entries); err != nil {
		outboxFailuresTotal.Inc()
		return 0, fmt.Errorf("publish %d outbox entries: %w", len(entries), err)
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EventID)
	}
	marked, err := p.outbox.MarkPublished(ctx, tx, ids)
	if err != nil {
		return 0, fmt.Errorf("mark outbox published: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit outbox tx: %w", err)
	}

	outboxPublishedTotal.Add(float64(marked))
	p.log.Debug().Int("fetched", len(entries)).Int64("marked", marked).
		Str("last_event_id", entries[len(entries)-1].EventID.String()).
		Msg("outbox batch published")
	return int(marked), nil
}

// Backlog reports unpublished entries and whether the backlog is within bounds.
func (p *OutboxPublisher) Backlog(ctx context.Context) (int64, bool, error) {
	n, err := p.outbox.CountUnpublished(ctx)
	if err != nil {
		return 0, false, err
	}
	outboxBacklog.Set(float64(n))
	return n, n <= p.maxBacklog, nil
}

// Ping implements ports.HealthChecker on the backlog.
func (p *OutboxPublisher) Ping(ctx context.Context) error {
	n, ok, err := p.Backlog(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("outbox backlog %d exceeds %d", n, p.maxBacklog)
	}
	return nil
}

func (p *OutboxPublisher) Name() string {
	return "outbox"
}

var _ ports.HealthChecker = (*OutboxPublisher)(nil)

