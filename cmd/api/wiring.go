package main

import (
	"context"
	"fmt"

	"wallet-ledger/config"
	"wallet-ledger/internal/adapter/messaging/inproc"
	"wallet-ledger/internal/adapter/messaging/kafka"
	"wallet-ledger/internal/adapter/storage/memory"
	pgStorage "wallet-ledger/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/logger"

	"github.com/rs/zerolog"
)

// storage bundles the adapters behind every port the services need.
type storage struct {
	events      ports.EventStore
	outbox      ports.OutboxRepository
	views       ports.WalletViewRepository
	deadLetters ports.DeadLetterRepository
	totals      ports.PeriodTotalsStore
	cache       ports.CommandResultCache
	rateLimits  ports.RateLimitStore
	transactor  ports.DBTransactor
	checkers    []ports.HealthChecker
	closers     []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return openMemory(cfg), nil
	case "postgres", "":
		return openPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openMemory(cfg *config.Config) *storage {
	s := memory.NewStore()
	return &storage{
		events:      memory.NewEventStore(s),
		outbox:      memory.NewOutboxRepo(s),
		views:       memory.NewWalletViewRepo(s),
		deadLetters: memory.NewDeadLetterRepo(s),
		totals:      memory.NewPeriodTotalsStore(s, cfg.Projection.TotalsTTL),
		cache:       memory.NewCommandCache(s),
		rateLimits:  memory.NewRateLimitStore(s),
		transactor:  memory.NewTransactor(s),
		checkers:    []ports.HealthChecker{memory.NewHealthCheck("memory")},
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	st.closers = append(st.closers, pool.Close)
	log.Info().Msg("PostgreSQL connected")

	if cfg.Database.Migrate {
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			st.close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	st.closers = append(st.closers, func() { _ = rdb.Close() })
	log.Info().Msg("Redis connected")

	st.events = pgStorage.NewEventStore(pool)
	st.outbox = pgStorage.NewOutboxRepo(pool)
	st.views = pgStorage.NewWalletViewRepo(pool)
	st.deadLetters = pgStorage.NewDeadLetterRepo(pool)
	st.transactor = pgStorage.NewTransactor(pool)
	st.totals = redisStorage.NewPeriodTotalsStore(rdb, cfg.Projection.TotalsTTL)
	st.cache = redisStorage.NewCommandCache(rdb)
	st.rateLimits = redisStorage.NewRateLimitStore(rdb)
	st.checkers = []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)}
	return st, nil
}

// transport connects the outbox relay to the projector. A nil bus means no
// relay runs; a nil consumer means nothing projects in this process.
type transport struct {
	bus      ports.EventBus
	consumer interface{ Run(context.Context) error }
	checkers []ports.HealthChecker
	closers  []func()
}

func (t *transport) close() {
	for i := len(t.closers) - 1; i >= 0; i-- {
		t.closers[i]()
	}
}

// openTransport uses Kafka for durable storage. The memory driver only relays
// through its in-process queue when the projector is enabled to drain it;
// otherwise entries stay in the outbox.
func openTransport(cfg *config.Config, projection *service.ProjectionServiceImpl, log zerolog.Logger) (*transport, error) {
	t := &transport{}
	if cfg.Storage.Driver == "memory" {
		if !cfg.Projection.Enabled {
			log.Warn().Msg("projection disabled with memory storage, outbox relay not started")
			return t, nil
		}
		queue := inproc.NewBus(projection, logger.Component(log, "inproc"))
		projection.WithLagReporter(queue)
		t.bus, t.consumer = queue, queue
		return t, nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	t.closers = append(t.closers, func() { _ = producer.Close() })
	t.bus = producer
	t.checkers = append(t.checkers, kafka.NewHealthCheck(cfg.Kafka.BrokerList()))

	if cfg.Projection.Enabled {
		c, err := kafka.NewConsumer(cfg.Kafka, projection, logger.Component(log, "kafka"))
		if err != nil {
			t.close()
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
		projection.WithLagReporter(c)
		t.consumer = c
	}
	return t, nil
}
