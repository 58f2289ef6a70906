package telemetry

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stint/internal/trial"
)

// Recorder exposes benchmark results as Prometheus metrics. It satisfies
// report.Sink, so it can be wired as an ordinary reporting sink.
type Recorder struct {
	runs      prometheus.Counter
	trialSecs prometheus.Histogram
	resources prometheus.Counter
}

// NewRecorder builds a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stint_runs_total",
			Help: "Completed benchmark runs.",
		}),
		trialSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stint_trial_duration_seconds",
			Help:    "Wall time of measured trials.",
			Buckets: prometheus.DefBuckets,
		}),
		resources: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stint_resources_released_total",
			Help: "Resources released by the harness.",
		}),
	}
	reg.MustRegister(r.runs, r.trialSecs, r.resources)
	return r
}

// Report records a finished run.
func (r *Recorder) Report(s *trial.Summary) error {
	r.runs.Inc()
	for _, d := range s.Series {
		r.trialSecs.Observe(d.Seconds())
	}
	r.resources.Add(float64(s.Resources))
	return nil
}

// StartMetricsServer serves /metrics for the given gatherer on addr. It
// blocks, so callers normally run it in a goroutine.
func StartMetricsServer(addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	slog.Info("Starting metrics server", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
