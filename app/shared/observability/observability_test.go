package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, "info", "json").Info("hello", slog.String("game_id", "g1"))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "g1", line["game_id"])
	})

	t.Run("text drops below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "warn", "text")
		logger.Info("quiet")
		logger.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "msg=loud")
	})
}

func TestInit_WithoutTempo(t *testing.T) {
	obs, err := Init(context.Background(), Config{ServiceName: "golf-scoring", LogLevel: "error"})
	require.NoError(t, err)
	require.NotNil(t, obs.Registry)
	require.NotNil(t, obs.Metrics)

	obs.Metrics.RecordOperationAttempt(context.Background(), "RecordScore", "score")
	families, err := obs.Registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "scoring_operations_total")
	assert.NoError(t, obs.Shutdown(context.Background()))
}

func TestNewNoop(t *testing.T) {
	obs := NewNoop()
	assert.NotNil(t, obs.Logger)
	assert.NotNil(t, obs.Tracer)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
