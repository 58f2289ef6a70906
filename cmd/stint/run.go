package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stint/internal/config"
	"stint/internal/report"
	"stint/internal/telemetry"
	"stint/internal/trial"
	"stint/internal/workload"
)

// newWorkload allows substituting the workload factory in tests.
var newWorkload = func(name string, size int) (trial.Workload, func(), error) {
	b, err := workload.New(name, size)
	if err != nil {
		return nil, nil, err
	}
	return b, b.Close, nil
}

func newRunCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run [workload]",
		Short: "Run a benchmark and print its timing summary",
		Long: `Runs the named workload (default: saxpy) through the trial harness and
prints mean and minimum trial times, per trial and per repetition, in
milliseconds. A run that errors mid-way prints nothing: partial statistics
from an aborted benchmark are not meaningful.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := workload.Saxpy
			if len(args) == 1 {
				name = args[0]
			}
			return runBenchmark(cmd, name, jsonOut)
		},
	}

	cmd.Flags().Int("trials", 5, "Measured trials (the warm-up trial is extra)")
	cmd.Flags().Int("reps", 50, "Repetitions per trial")
	cmd.Flags().Int("size", 256, "Workload size (vector length or matrix dimension)")
	cmd.Flags().Duration("timeout", 60*time.Second, "Overall wall-clock allowance for the run")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Also print the summary as JSON")

	viper.BindPFlag("trials", cmd.Flags().Lookup("trials"))
	viper.BindPFlag("reps", cmd.Flags().Lookup("reps"))
	viper.BindPFlag("size", cmd.Flags().Lookup("size"))
	viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("metrics_addr", cmd.Flags().Lookup("metrics-addr"))

	return cmd
}

func runBenchmark(cmd *cobra.Command, name string, jsonOut bool) error {
	cfg := config.FromViper()
	if err := cfg.Validate(); err != nil {
		return err
	}

	w, closeWorkload, err := newWorkload(name, cfg.Size)
	if err != nil {
		return err
	}
	defer closeWorkload()

	sinks := []report.Sink{&report.Console{Out: cmd.OutOrStdout()}}
	if jsonOut {
		sinks = append(sinks, &report.JSON{Out: cmd.OutOrStdout()})
	}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		sinks = append(sinks, telemetry.NewRecorder(reg))
		go func() {
			if err := telemetry.StartMetricsServer(cfg.MetricsAddr, reg); err != nil {
				slog.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	// The harness has no internal timeout; the overall allowance is imposed
	// here, from the outside.
	ctx := cmd.Context()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	slog.Info("Starting run", "workload", name, "trials", cfg.Trials, "reps", cfg.Reps, "size", cfg.Size)
	start := time.Now()

	summary, err := trial.New(cfg.Trials, cfg.Reps).Run(ctx, w)
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}

	slog.Info("Run complete", "elapsed", time.Since(start), "mean", summary.Mean, "min", summary.Min)
	return report.Multi(sinks...).Report(summary)
}
