package telemetry

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stint/internal/trial"
)

func TestRecorderReport(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	s := trial.Summarize([]time.Duration{
		10 * time.Millisecond,
		12 * time.Millisecond,
	}, 5)
	s.Resources = 15

	require.NoError(t, rec.Report(s))
	require.NoError(t, rec.Report(s))

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.runs))
	assert.Equal(t, 30.0, testutil.ToFloat64(rec.resources))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.trialSecs))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestStartMetricsServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)
	require.NoError(t, rec.Report(trial.Summarize(nil, 1)))

	addr := "localhost:9957"
	go func() {
		_ = StartMetricsServer(addr, reg)
	}()

	// Poll until the server answers or we give up.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if err == nil {
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("metrics server never came up")
}
