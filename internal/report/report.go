// Package report renders finished benchmark runs. The harness core only
// produces a summary; everything about presentation lives here.
package report

import (
	"fmt"
	"time"

	"stint/internal/trial"
)

// Sink consumes the summary of a finished run.
type Sink interface {
	Report(s *trial.Summary) error
}

// Multi fans a summary out to several sinks. The first sink error stops the
// fan-out and is returned.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) Report(s *trial.Summary) error {
	for _, sink := range m {
		if err := sink.Report(s); err != nil {
			return err
		}
	}
	return nil
}

// FormatMs renders a duration as fixed 3-decimal milliseconds.
func FormatMs(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}
