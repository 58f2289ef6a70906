package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeeHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	tee := &teeHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	logger := slog.New(tee)
	logger.Info("hello", "trials", 5)

	for _, buf := range []*bytes.Buffer{&a, &b} {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, float64(5), rec["trials"])
	}
}

func TestTeeHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	debugOnly := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoOnly := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	tee := &teeHandler{handlers: []slog.Handler{infoOnly, debugOnly}}
	assert.True(t, tee.Enabled(context.Background(), slog.LevelDebug))

	infoTee := &teeHandler{handlers: []slog.Handler{infoOnly}}
	assert.False(t, infoTee.Enabled(context.Background(), slog.LevelDebug))
}

func TestTeeHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	tee := &teeHandler{handlers: []slog.Handler{slog.NewJSONHandler(&buf, nil)}}

	logger := slog.New(tee).With("workload", "saxpy")
	logger.Info("run complete")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "saxpy", rec["workload"])
}

func TestInitLoggerWritesToFile(t *testing.T) {
	path := t.TempDir() + "/stint.log"
	InitLogger(true, path)
	defer InitLogger(false, "") // restore a plain default

	slog.Debug("file sink check", "reps", 50)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file sink check")
}
