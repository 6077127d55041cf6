package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"
)

// EventBus delivers outbox entries to the ordered log. All entries of one call
// are acknowledged together or the call fails.
type EventBus interface {
	Publish(ctx context.Context, entries []domain.OutboxEntry) error
}

// EventHandler consumes one message from the log. A returned error means the
// message was not handled and must not be acknowledged.
type EventHandler interface {
	Handle(ctx context.Context, payload []byte) error
}
