package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is written in the same transaction as its event. EventID is the
// durable dedupe key for publishing.
type OutboxEntry struct {
	ID          int64      `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	AggregateID uuid.UUID  `json:"aggregate_id"`
	EventType   EventType  `json:"event_type"`
	Payload     []byte     `json:"payload"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Traceparent string     `json:"-"`
	Tracestate  string     `json:"-"`
}

// NewOutboxEntry serializes e as the message body.
func NewOutboxEntry(e DomainEvent) (OutboxEntry, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return OutboxEntry{}, err
	}
	return OutboxEntry{
		EventID:     e.EventID,
		AggregateID: e.AggregateID,
		EventType:   e.EventType,
		Payload:     payload,
		CreatedAt:   e.Timestamp,
	}, nil
}

// Snapshot caches a serialized WalletState at Version. Advisory only.
type Snapshot struct {
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	State         json.RawMessage `json:"state"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
}
