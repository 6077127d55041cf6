package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("wallet_id", "w-1").Msg("wallet created")

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output), "logger output should be valid JSON")

	assert.Equal(t, "wallet created", output["message"])
	assert.Equal(t, "w-1", output["wallet_id"])
	assert.Equal(t, "info", output["level"])
	assert.Contains(t, output, "time")
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter("info", &buf), "outbox")

	log.Info().Msg("tick")

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "outbox", output["component"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warning", false, false},
		{"error", false, false},
		{"invalid", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)

			log.Debug().Msg("debug")
			assert.Equal(t, tt.debugShown, buf.Len() > 0)

			buf.Reset()
			log.Info().Msg("info")
			assert.Equal(t, tt.infoShown, buf.Len() > 0)
		})
	}
}

func TestNew_PrettyMode(t *testing.T) {
	// Pretty mode writes to stdout; only check it does not panic.
	log := New("info", true, "wallet-ledger")
	log.Info().Msg("pretty mode test")
}
