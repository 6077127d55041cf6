package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CommandCache implements ports.CommandResultCache using Redis.
type CommandCache struct {
	client *goredis.Client
}

// NewCommandCache creates a new Redis-backed command result cache.
func NewCommandCache(client *goredis.Client) *CommandCache {
	return &CommandCache{client: client}
}

// Get retrieves the cached result of a command.
// Returns nil, nil if the command id is unknown.
func (c *CommandCache) Get(ctx context.Context, commandID string) (*domain.CommandResult, error) {
	val, err := c.client.Get(ctx, domain.BuildCommandKey(commandID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis command cache get: %w", err)
	}

	var res domain.CommandResult
	if err := json.Unmarshal(val, &res); err != nil {
		return nil, fmt.Errorf("redis command cache decode: %w", err)
	}
	return &res, nil
}

// Set stores a command result with TTL. The first stored result wins (SET NX),
// so a retried command cannot overwrite the original outcome.
func (c *CommandCache) Set(ctx context.Context, res *domain.CommandResult, ttl time.Duration) error {
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("redis command cache encode: %w", err)
	}
	err = c.client.SetArgs(ctx, domain.BuildCommandKey(res.CommandID), val, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis command cache set: %w", err)
	}
	return nil
}
