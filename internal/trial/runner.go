package trial

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is returned when trial or repetition counts are not positive.
var ErrInvalidArgument = errors.New("trials and reps must be positive")

// Resource is an externally-owned allocation produced by a repetition.
// Ownership transfers to the Runner when DoRep returns; the Runner releases
// every resource exactly once, at the boundary of the trial that produced it.
type Resource interface {
	Release() error
}

// Workload supplies the benchmarked operation.
type Workload interface {
	// DoRep performs one repetition of the benchmarked work and returns any
	// resources it allocated. Returning no resources is valid.
	DoRep() ([]Resource, error)

	// EndTrial forces completion of all work submitted by the repetitions of
	// the current trial, e.g. a readback from an asynchronous backend. A
	// trial only counts as done for timing purposes once EndTrial returns.
	EndTrial(ctx context.Context) error
}

// Funcs adapts plain functions to the Workload interface. A nil Rep performs
// no work and allocates nothing; a nil End completes immediately.
type Funcs struct {
	Rep func() ([]Resource, error)
	End func(ctx context.Context) error
}

func (f Funcs) DoRep() ([]Resource, error) {
	if f.Rep == nil {
		return nil, nil
	}
	return f.Rep()
}

func (f Funcs) EndTrial(ctx context.Context) error {
	if f.End == nil {
		return nil
	}
	return f.End(ctx)
}

// ReleaseFunc adapts a function to the Resource interface.
type ReleaseFunc func() error

func (f ReleaseFunc) Release() error { return f() }

// Runner times repeated executions of a workload. One run is a discarded
// warm-up trial followed by Trials measured trials, each of Reps repetitions
// plus one EndTrial call. Trials execute strictly sequentially.
type Runner struct {
	Trials int
	Reps   int
}

// New returns a Runner for the given measured-trial and repetition counts.
func New(trials, reps int) *Runner {
	return &Runner{Trials: trials, Reps: reps}
}

// Run executes the benchmark and returns its timing summary.
//
// The warm-up trial exists to push one-time allocation and caching in the
// benchmarked backend outside the measurement window; its timing is
// discarded and its resources are released before the first measured trial
// starts. Within a measured trial, all Reps repetitions are submitted
// back-to-back before EndTrial, so a backend that queues work pays its
// synchronization latency once per trial rather than once per repetition.
//
// Resources accumulated during a trial are released only after that trial's
// elapsed time has been recorded, keeping cleanup cost out of the
// measurement. Any workload or release error aborts the run immediately; no
// partial summary is returned and nothing is retried.
func (r *Runner) Run(ctx context.Context, w Workload) (*Summary, error) {
	if r.Trials < 1 || r.Reps < 1 {
		return nil, fmt.Errorf("%w: trials=%d reps=%d", ErrInvalidArgument, r.Trials, r.Reps)
	}

	released := 0

	// Warm-up: same shape as a measured trial, timing thrown away.
	if _, err := r.trial(ctx, w, &released); err != nil {
		return nil, err
	}

	series := make([]time.Duration, 0, r.Trials)
	for t := 0; t < r.Trials; t++ {
		elapsed, err := r.trial(ctx, w, &released)
		if err != nil {
			return nil, err
		}
		series = append(series, elapsed)
	}

	s := Summarize(series, r.Reps)
	s.Resources = released
	return s, nil
}

// trial runs Reps repetitions plus one EndTrial and returns the elapsed wall
// time. Every resource handed over by DoRep is released before trial
// returns, on all paths, and always after the clock has been read.
func (r *Runner) trial(ctx context.Context, w Workload, released *int) (time.Duration, error) {
	resources := make([]Resource, 0, r.Reps)

	start := time.Now()
	var workErr error
	for i := 0; i < r.Reps; i++ {
		rs, err := w.DoRep()
		resources = append(resources, rs...)
		if err != nil {
			workErr = err
			break
		}
	}
	if workErr == nil {
		workErr = w.EndTrial(ctx)
	}
	elapsed := time.Since(start)

	relErr := releaseAll(resources, released)
	if workErr != nil {
		if relErr != nil {
			// The workload failure is primary, but a release failure on the
			// way out must not be swallowed either.
			return 0, errors.Join(workErr, relErr)
		}
		return 0, workErr
	}
	if relErr != nil {
		return 0, relErr
	}
	return elapsed, nil
}

func releaseAll(resources []Resource, released *int) error {
	var errs []error
	for _, res := range resources {
		if err := res.Release(); err != nil {
			errs = append(errs, err)
			continue
		}
		*released++
	}
	return errors.Join(errs...)
}
