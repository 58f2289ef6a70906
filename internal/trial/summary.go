package trial

import "time"

// Summary holds per-trial and per-repetition timing statistics for one run.
type Summary struct {
	Trials int
	Reps   int

	// Series holds the elapsed wall time of each measured trial, in order.
	// The warm-up trial is never included.
	Series []time.Duration

	Mean time.Duration
	Min  time.Duration

	// MeanPerRep and MinPerRep are the trial statistics divided by Reps.
	MeanPerRep time.Duration
	MinPerRep  time.Duration

	// Resources counts resources released over the whole run, warm-up
	// included.
	Resources int
}

// Summarize derives mean and minimum statistics from a series of measured
// trial durations.
func Summarize(series []time.Duration, reps int) *Summary {
	s := &Summary{Trials: len(series), Reps: reps, Series: series}
	if len(series) == 0 || reps < 1 {
		return s
	}

	var total time.Duration
	min := series[0]
	for _, d := range series {
		total += d
		if d < min {
			min = d
		}
	}

	s.Mean = total / time.Duration(len(series))
	s.Min = min
	s.MeanPerRep = s.Mean / time.Duration(reps)
	s.MinPerRep = min / time.Duration(reps)
	return s
}
