package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/trial"
)

func sampleSummary() *trial.Summary {
	s := trial.Summarize([]time.Duration{
		10 * time.Millisecond,
		12 * time.Millisecond,
		11 * time.Millisecond,
	}, 50)
	s.Resources = 200
	return s
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "11.000 ms", FormatMs(11*time.Millisecond))
	assert.Equal(t, "0.220 ms", FormatMs(220*time.Microsecond))
	assert.Equal(t, "0.001 ms", FormatMs(1*time.Microsecond))
}

func TestConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	require.NoError(t, c.Report(sampleSummary()))
	out := buf.String()

	assert.Contains(t, out, "3 trials x 50 reps")
	assert.Contains(t, out, "11.000 ms")
	assert.Contains(t, out, "0.220 ms")
	assert.Contains(t, out, "10.000 ms")
	assert.Contains(t, out, "0.200 ms")
	assert.Contains(t, out, "200 resources released")
}

func TestJSONReport(t *testing.T) {
	var buf bytes.Buffer
	j := &JSON{Out: &buf}

	require.NoError(t, j.Report(sampleSummary()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, float64(3), got["trials"])
	assert.Equal(t, float64(50), got["reps"])
	assert.Equal(t, 11.0, got["mean_ms"])
	assert.Equal(t, 10.0, got["min_ms"])
	assert.Equal(t, 0.22, got["mean_per_rep_ms"])
	assert.Equal(t, 0.2, got["min_per_rep_ms"])
	assert.Equal(t, float64(200), got["resources_released"])
	assert.Len(t, got["series_ms"], 3)
}

type errSink struct{ err error }

func (e *errSink) Report(*trial.Summary) error { return e.err }

type countSink struct{ calls int }

func (c *countSink) Report(*trial.Summary) error {
	c.calls++
	return nil
}

func TestMultiStopsOnFirstError(t *testing.T) {
	boom := errors.New("sink failed")
	first := &countSink{}
	last := &countSink{}

	err := Multi(first, &errSink{err: boom}, last).Report(sampleSummary())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, last.calls)
}
