package redis

import (
	"context"
	"fmt"
	"testing"

	"wallet-ledger/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)}
	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	hc := NewHealthCheck(client)
	assert.Equal(t, "redis", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))

	mr.Close()
	assert.Error(t, hc.Ping(context.Background()))
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)}
	mr.Close()

	_, err := NewClient(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRedisAddr(t *testing.T) {
	cfg := config.RedisConfig{
		Host: "redis.example.com",
		Port: 6380,
	}

	assert.Equal(t, "redis.example.com:6380", cfg.Addr())
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	var port int
	_, err := fmt.Sscanf(mr.Port(), "%d", &port)
	require.NoError(t, err)
	return port
}
