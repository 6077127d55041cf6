package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger/config"
	httpHandler "wallet-ledger/internal/adapter/http/handler"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/logger"
	"wallet-ledger/pkg/telemetry"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	rebuild := flag.Bool("rebuild-projections", false, "replay the event store into the read models and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty, cfg.Telemetry.ServiceName)

	if err := run(cfg, log, *rebuild); err != nil {
		log.Error().Err(err).Msg("wallet ledger stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("wallet ledger exited")
}

func run(cfg *config.Config, log zerolog.Logger, rebuild bool) error {
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting wallet ledger")

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	// Core services
	repo := service.NewWalletRepository(st.events, cfg.EventStore.SnapshotThreshold, logger.Component(log, "repository"))
	commands := service.NewWalletCommandService(repo, st.events, st.cache, cfg.EventStore, logger.Component(log, "commands"))
	queries := service.NewWalletQueryService(st.views, st.totals, logger.Component(log, "queries"))
	projection := service.NewProjectionService(st.transactor, st.views, st.totals, st.deadLetters, st.events,
		cfg.Projection, logger.Component(log, "projection"), st.checkers...)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	if rebuild {
		n, err := projection.Rebuild(ctx)
		if err != nil {
			return fmt.Errorf("rebuilding projections: %w", err)
		}
		log.Info().Int("events", n).Msg("projections rebuilt")
		return nil
	}

	tr, err := openTransport(cfg, projection, log)
	if err != nil {
		return err
	}
	defer tr.close()

	checkers := append(append([]ports.HealthChecker(nil), st.checkers...), tr.checkers...)
	relay := cfg.Outbox.Enabled && tr.bus != nil
	publisher := service.NewOutboxPublisher(st.transactor, st.outbox, tr.bus, cfg.Outbox, logger.Component(log, "outbox"))
	if relay {
		checkers = append(checkers, publisher)
	}

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	deps := httpHandler.RouterDeps{
		Commands:       commands,
		Queries:        queries,
		TokenSvc:       tokenSvc,
		RateLimitStore: st.rateLimits,
		HealthCheckers: checkers,
		Mode:           cfg.Server.Mode,
		Logger:         logger.Component(log, "http"),
	}
	if cfg.Projection.Enabled {
		deps.Projection = projection
	}
	router := httpHandler.SetupRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, "wallet-ledger"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if relay {
		g.Go(func() error { return publisher.Run(gctx) })
	}
	if tr.consumer != nil {
		g.Go(func() error {
			log.Info().Str("topic", cfg.Kafka.Topic).Msg("projection consumer started")
			return tr.consumer.Run(gctx)
		})
	}

	return g.Wait()
}
