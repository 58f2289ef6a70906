package report

import (
	"encoding/json"
	"io"
	"time"

	"stint/internal/trial"
)

// JSON writes a summary as a single indented JSON object, durations in
// milliseconds.
type JSON struct {
	Out io.Writer
}

type jsonSummary struct {
	Trials       int       `json:"trials"`
	Reps         int       `json:"reps"`
	MeanMs       float64   `json:"mean_ms"`
	MinMs        float64   `json:"min_ms"`
	MeanPerRepMs float64   `json:"mean_per_rep_ms"`
	MinPerRepMs  float64   `json:"min_per_rep_ms"`
	SeriesMs     []float64 `json:"series_ms"`
	Resources    int       `json:"resources_released"`
}

func (j *JSON) Report(s *trial.Summary) error {
	out := jsonSummary{
		Trials:       s.Trials,
		Reps:         s.Reps,
		MeanMs:       ms(s.Mean),
		MinMs:        ms(s.Min),
		MeanPerRepMs: ms(s.MeanPerRep),
		MinPerRepMs:  ms(s.MinPerRep),
		SeriesMs:     make([]float64, 0, len(s.Series)),
		Resources:    s.Resources,
	}
	for _, d := range s.Series {
		out.SeriesMs = append(out.SeriesMs, ms(d))
	}

	enc := json.NewEncoder(j.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
