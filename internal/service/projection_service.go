package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Projector names key the processed-event ledgers.
const (
	ProjectorRelational = "relational"
	ProjectorTotals     = "totals"
)

const rebuildPageSize = 500

var errViewMissing = errors.New("wallet view not projected yet")

// ProjectionServiceImpl implements ports.ProjectionService. Each event is
// applied to the relational store under its ledger in one transaction, then
// the period totals of its wallet and user are recomputed from the relational
// rows and written to the aggregate store with that store's ledger key.
type ProjectionServiceImpl struct {
	transactor   ports.DBTransactor
	views        ports.WalletViewRepository
	totals       ports.PeriodTotalsStore
	deadLetters  ports.DeadLetterRepository
	store        ports.EventStore
	checkers     []ports.HealthChecker
	lag          ports.LagReporter
	maxAttempts  int
	retryBackoff time.Duration
	maxLag       int64
	log          zerolog.Logger

	mu    sync.Mutex
	stats ports.ProjectionStats
}

// NewProjectionService creates the projector.
func NewProjectionService(
	transactor ports.DBTransactor,
	views ports.WalletViewRepository,
	totals ports.PeriodTotalsStore,
	deadLetters ports.DeadLetterRepository,
	store ports.EventStore,
	cfg config.ProjectionConfig,
	log zerolog.Logger,
	checkers ...ports.HealthChecker,
) *ProjectionServiceImpl {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &ProjectionServiceImpl{
		transactor:   transactor,
		views:        views,
		totals:       totals,
		deadLetters:  deadLetters,
		store:        store,
		checkers:     checkers,
		maxAttempts:  cfg.MaxAttempts,
		retryBackoff: cfg.RetryBackoff,
		maxLag:       cfg.MaxLag,
		log:          log,
		stats:        ports.ProjectionStats{ByEventType: make(map[string]int64)},
	}
}

// WithLagReporter attaches the consumer whose lag is reported in stats and health.
func (s *ProjectionServiceImpl) WithLagReporter(l ports.LagReporter) *ProjectionServiceImpl {
	s.lag = l
	return s
}

// Handle projects one serialized DomainEvent. Bad payloads and events that
// keep failing are parked and acknowledged; an error is returned only when
// the event could not even be parked.
func (s *ProjectionServiceImpl) Handle(ctx context.Context, payload []byte) error {
	e, err := domain.ParseEvent(payload)
	if err != nil {
		s.count(func(st *ports.ProjectionStats) { st.Errors++ })
		projectionEventsTotal.WithLabelValues("unknown", "error").Inc()
		s.log.Error().Err(err).Msg("unparseable event payload, parking")
		return s.park(ctx, &domain.ParkedEvent{
			EventID:  uuid.NewSHA1(uuid.NameSpaceOID, payload).String(),
			Payload:  payload,
			Reason:   err.Error(),
			Attempts: 1,
		})
	}
	return s.handleEvent(ctx, e, payload)
}

func (s *ProjectionServiceImpl) handleEvent(ctx context.Context, e domain.DomainEvent, payload []byte) error {
	if !e.EventType.IsKnown() {
		s.count(func(st *ports.ProjectionStats) { st.Skipped++ })
		projectionEventsTotal.WithLabelValues(string(e.EventType), "skipped").Inc()
		s.log.Warn().Str("event_id", e.EventID.String()).Str("event_type", string(e.EventType)).Msg("unknown event type skipped")
		return nil
	}

	start := time.Now()
	var (
		fresh bool
		err   error
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		fresh, err = s.project(ctx, e)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn().Err(err).
			Str("event_id", e.EventID.String()).
			Int("attempt", attempt).
			Msg("projection failed")
		if attempt < s.maxAttempts {
			if err := sleepCtx(ctx, time.Duration(attempt)*s.retryBackoff); err != nil {
				return err
			}
		}
	}
	projectionDuration.Observe(time.Since(start).Seconds())

	eventType := string(e.EventType)
	if err != nil {
		s.count(func(st *ports.ProjectionStats) { st.Errors++ })
		projectionEventsTotal.WithLabelValues(eventType, "parked").Inc()
		return s.park(ctx, &domain.ParkedEvent{
			EventID:   e.EventID.String(),
			EventType: eventType,
			Payload:   payload,
			Reason:    err.Error(),
			Attempts:  s.maxAttempts,
		})
	}

	at := e.Timestamp
	if !fresh {
		s.count(func(st *ports.ProjectionStats) {
			st.Duplicates++
			st.LastEventAt = &at
		})
		projectionEventsTotal.WithLabelValues(eventType, "duplicate").Inc()
		s.log.Debug().Str("event_id", e.EventID.String()).Msg("duplicate event ignored")
		return nil
	}
	s.count(func(st *ports.ProjectionStats) {
		st.EventsProcessed++
		st.ByEventType[eventType]++
		st.LastEventAt = &at
	})
	projectionEventsTotal.WithLabelValues(eventType, "applied").Inc()
	return nil
}

// project applies e to both stores. fresh is false when both ledgers had
// already seen the event.
func (s *ProjectionServiceImpl) project(ctx context.Context, e domain.DomainEvent) (bool, error) {
	freshRelational, userID, err := s.projectRelational(ctx, e)
	if err != nil {
		return false, err
	}

	if userID == "" {
		view, err := s.views.GetWallet(ctx, e.AggregateID)
		if err != nil {
			return false, fmt.Errorf("load wallet view: %w", err)
		}
		if view == nil {
			return false, fmt.Errorf("%w: %s", errViewMissing, e.AggregateID)
		}
		userID = view.UserID
	}

	period := domain.PeriodOf(e.Timestamp)
	subjects := []domain.Subject{
		{Kind: domain.SubjectWallet, ID: e.AggregateID.String()},
		{Kind: domain.SubjectUser, ID: userID},
	}
	totals := make([]domain.PeriodTotals, 0, len(subjects))
	for _, subject := range subjects {
		t, err := s.views.SumPeriod(ctx, subject, period)
		if err != nil {
			return false, fmt.Errorf("sum %s totals: %w", subject.Kind, err)
		}
		totals = append(totals, *t)
	}

	freshTotals, err := s.totals.Apply(ctx, ProjectorTotals, e.EventID, totals)
	if err != nil {
		return false, fmt.Errorf("apply period totals: %w", err)
	}
	return freshRelational || freshTotals, nil
}

// projectRelational returns the wallet's user id when the event carries it.
func (s *ProjectionServiceImpl) projectRelational(ctx context.Context, e domain.DomainEvent) (bool, string, error) {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, "", fmt.Errorf("begin projection tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	fresh, err := s.views.MarkProcessed(ctx, tx, ProjectorRelational, e.EventID)
	if err != nil {
		return false, "", fmt.Errorf("mark processed: %w", err)
	}
	if !fresh {
		return false, "", nil
	}

	userID, err := s.apply(ctx, tx, e)
	if err != nil {
		return false, "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, "", fmt.Errorf("commit projection tx: %w", err)
	}
	return true, userID, nil
}

// park records p in the dead-letter store and counts it.
func (s *ProjectionServiceImpl) park(ctx context.Context, p *domain.ParkedEvent) error {
	p.Projector = ProjectorRelational
	p.ParkedAt = time.Now().UTC()
	if err := s.deadLetters.Park(ctx, p); err != nil {
		return fmt.Errorf("park event %s: %w", p.EventID, err)
	}
	s.count(func(st *ports.ProjectionStats) { st.Parked++ })
	s.log.Error().Str("event_id", p.EventID).Str("event_type", p.EventType).Str("reason", p.Reason).Msg("event parked")
	return nil
}

func (s *ProjectionServiceImpl) count(fn func(st *ports.ProjectionStats)) {
	s.mu.Lock()
	fn(&s.stats)
	s.mu.Unlock()
}

// Stats returns a copy of the counters.
func (s *ProjectionServiceImpl) Stats() ports.ProjectionStats {
	s.mu.Lock()
	st := s.stats
	st.ByEventType = make(map[string]int64, len(s.stats.ByEventType))
	for k, v := range s.stats.ByEventType {
		st.ByEventType[k] = v
	}
	if s.stats.LastEventAt != nil {
		at := *s.stats.LastEventAt
		st.LastEventAt = &at
	}
	s.mu.Unlock()

	if s.lag != nil {
		st.Lag = s.lag.Lag()
	}
	return st
}

// Health pings every dependency and compares consumer lag with the limit.
func (s *ProjectionServiceImpl) Health(ctx context.Context) ports.ProjectionHealth {
	h := ports.ProjectionHealth{Status: "healthy", Dependencies: make(map[string]string, len(s.checkers))}
	for _, c := range s.checkers {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := c.Ping(pingCtx)
		cancel()
		if err != nil {
			h.Dependencies[c.Name()] = "down: " + err.Error()
			h.Status = "degraded"
			continue
		}
		h.Dependencies[c.Name()] = "up"
	}
	if s.lag != nil {
		h.Lag = s.lag.Lag()
		if s.maxLag > 0 && h.Lag > s.maxLag {
			h.Status = "degraded"
		}
	}
	return h
}

// Rebuild replays the event store in global order through the projectors.
// Events already in the ledgers are counted as duplicates, so a rebuild over
// live read models only fills gaps.
func (s *ProjectionServiceImpl) Rebuild(ctx context.Context) (int, error) {
	var (
		after int64
		total int
	)
	for {
		events, err := s.store.ReadEventsAfter(ctx, after, rebuildPageSize)
		if err != nil {
			return total, fmt.Errorf("read events after %d: %w", after, err)
		}
		for _, e := range events {
			payload, err := json.Marshal(e)
			if err != nil {
				return total, fmt.Errorf("encode event %s: %w", e.EventID, err)
			}
			if err := s.handleEvent(ctx, e, payload); err != nil {
				return total, err
			}
			after = e.Position
			total++
		}
		if len(events) < rebuildPageSize {
			break
		}
	}
	s.log.Info().Int("events", total).Msg("projection rebuild finished")
	return total, nil
}
