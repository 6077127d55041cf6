// Package inproc delivers outbox entries to an in-process handler. It stands
// in for the Kafka log when the service runs on the memory storage driver.
package inproc

import (
	"context"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Bus implements ports.EventBus with an unbounded FIFO queue. Publish never
// blocks on the handler, so it is safe to call while a storage transaction
// that the handler also needs is open.
type Bus struct {
	mu      sync.Mutex
	queue   [][]byte
	notify  chan struct{}
	handler ports.EventHandler
	backoff time.Duration
	log     zerolog.Logger
}

func NewBus(handler ports.EventHandler, log zerolog.Logger) *Bus {
	return &Bus{
		notify:  make(chan struct{}, 1),
		handler: handler,
		backoff: 100 * time.Millisecond,
		log:     log,
	}
}

// Publish enqueues the payloads in order.
func (b *Bus) Publish(ctx context.Context, entries []domain.OutboxEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	for _, e := range entries {
		b.queue = append(b.queue, append([]byte(nil), e.Payload...))
	}
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
	return nil
}

// Run hands queued payloads to the handler one at a time. A payload leaves
// the queue only after the handler accepted it.
func (b *Bus) Run(ctx context.Context) error {
	for {
		payload, ok := b.head()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-b.notify:
			}
			continue
		}

		if err := b.handler.Handle(ctx, payload); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error().Err(err).Msg("event handler failed, retrying")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(b.backoff):
			}
			continue
		}
		b.pop()
	}
}

// Lag is the number of queued payloads not yet handled.
func (b *Bus) Lag() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.queue))
}

func (b *Bus) head() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	return b.queue[0], true
}

func (b *Bus) pop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue[0] = nil
	b.queue = b.queue[1:]
}
