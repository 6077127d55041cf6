package kafka

import (
	"context"
	"errors"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Stats() kafka.ReaderStats
	Close() error
}

// Consumer feeds messages to a handler and commits each offset only after the
// handler returned. A failing message is retried until it succeeds, so no
// offset is ever skipped.
type Consumer struct {
	reader  messageReader
	handler ports.EventHandler
	log     zerolog.Logger
	backoff time.Duration
	tracer  trace.Tracer
}

// NewConsumer joins cfg.GroupID on cfg.Topic.
func NewConsumer(cfg config.KafkaConfig, handler ports.EventHandler, log zerolog.Logger) (*Consumer, error) {
	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(r, handler, log), nil
}

func newConsumer(r messageReader, handler ports.EventHandler, log zerolog.Logger) *Consumer {
	return &Consumer{
		reader:  r,
		handler: handler,
		log:     log,
		backoff: time.Second,
		tracer:  otel.Tracer("wallet-ledger/kafka"),
	}
}

// Run consumes until ctx is cancelled. It returns nil on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error().Err(err).Msg("kafka fetch failed")
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}

		if !c.handle(ctx, msg) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Redelivery after a failed commit is absorbed by the projector ledgers.
			c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("kafka commit failed")
		}
	}
}

// handle retries msg until the handler accepts it. Returns false on shutdown.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) bool {
	for attempt := 1; ; attempt++ {
		msgCtx := ExtractTraceContext(ctx, msg)
		spanCtx, span := c.tracer.Start(msgCtx, "kafka.consume",
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(
				attribute.String("messaging.system", "kafka"),
				attribute.String("messaging.destination", msg.Topic),
				attribute.Int("messaging.kafka.partition", msg.Partition),
				attribute.Int64("messaging.kafka.offset", msg.Offset),
				attribute.String("event.id", HeaderValue(msg.Headers, HeaderEventID)),
			),
		)
		err := c.handler.Handle(spanCtx, msg.Value)
		if err == nil {
			span.End()
			return true
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		c.log.Error().Err(err).
			Str("event_id", HeaderValue(msg.Headers, HeaderEventID)).
			Int64("offset", msg.Offset).
			Int("attempt", attempt).
			Msg("event handler failed, retrying")
		if !sleep(ctx, c.backoff) {
			return false
		}
	}
}

// Lag is the number of messages behind the partition head, as last reported by the reader.
func (c *Consumer) Lag() int64 {
	return c.reader.Stats().Lag
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
