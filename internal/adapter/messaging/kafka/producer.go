// Package kafka publishes outbox entries to Kafka and feeds consumed
// events to the projection handler.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/pkg/telemetry"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements ports.EventBus. Messages are keyed by aggregate id so
// the hash balancer keeps each wallet's events on one partition, in order.
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer creates a synchronous writer that waits for all in-sync replicas.
func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic not configured")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Gzip,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newProducer(w, cfg.Topic), nil
}

func newProducer(w messageWriter, topic string) *Producer {
	return &Producer{writer: w, topic: topic}
}

// Publish writes entries in order as one batch. Either every message was
// acknowledged or an error is returned and the caller retries the batch.
func (p *Producer) Publish(ctx context.Context, entries []domain.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, p.message(ctx, e))
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write %d messages: %w", len(msgs), err)
	}
	return nil
}

func (p *Producer) message(ctx context.Context, e domain.OutboxEntry) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(e.EventID.String())},
		{Key: HeaderEventType, Value: []byte(e.EventType)},
		{Key: HeaderAggregateID, Value: []byte(e.AggregateID.String())},
	}
	if corr := correlationOf(e.Payload); corr != "" {
		headers = append(headers, kafka.Header{Key: HeaderCorrelationID, Value: []byte(corr)})
	}
	msgCtx := telemetry.ContextWithTraceContext(ctx, e.Traceparent, e.Tracestate)
	return kafka.Message{
		Key:     []byte(e.AggregateID.String()),
		Value:   e.Payload,
		Headers: InjectTraceHeaders(msgCtx, headers),
		Time:    e.CreatedAt,
	}
}

func correlationOf(payload []byte) string {
	var probe struct {
		CorrelationID string `json:"correlationId"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return ""
	}
	return probe.CorrelationID
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
