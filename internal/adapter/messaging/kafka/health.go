package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// HealthCheck implements ports.HealthChecker by dialing the first broker.
type HealthCheck struct {
	brokers []string
	dialer  *kafka.Dialer
}

func NewHealthCheck(brokers []string) *HealthCheck {
	return &HealthCheck{
		brokers: brokers,
		dialer:  &kafka.Dialer{Timeout: 2 * time.Second},
	}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if len(h.brokers) == 0 {
		return errors.New("kafka brokers not configured")
	}
	conn, err := h.dialer.DialContext(ctx, "tcp", h.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

func (h *HealthCheck) Name() string {
	return "kafka"
}
