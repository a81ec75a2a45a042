package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/model"
	"github.com/nao1215/blackholecalc/internal/pipeline"
)

// sweepOptions holds the sweep-specific flags.
type sweepOptions struct {
	parameter string
	from      float64
	to        float64
	steps     int
}

// NewSweepCmd creates the sweep command.
func NewSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a black hole over a range of spin or charge",
		Long: `Sweep evaluates the same black hole at evenly spaced values of spin (or
charge) and prints one row per point with the horizon, ISCO and Hawking
temperature. Points are evaluated concurrently and reported in order.

Points whose parameters describe a naked singularity are listed with their
error. Sweeps are dry runs: nothing is saved.

Examples:
  # Spin sweep of a 10 solar mass black hole
  blackholecalc sweep --mass 10 --from 0 --to 0.99 --steps 12

  # Charge sweep at fixed spin, Markdown table
  blackholecalc sweep --vary charge --spin 0.5 --to 0.85 --markdown`,
		Args: cobra.NoArgs,
		RunE: runSweepCmd,
	}

	addModelFlags(cmd)
	addProbeFlags(cmd)
	addReportFlags(cmd)

	cmd.Flags().String("vary", pipeline.ParameterSpin,
		"Parameter to sweep: spin or charge")
	cmd.Flags().Float64("from", config.DefaultSweepFrom,
		"First value of the swept parameter")
	cmd.Flags().Float64("to", config.DefaultSweepTo,
		"Last value of the swept parameter")
	cmd.Flags().IntP("steps", "n", config.DefaultSweepSteps,
		"Number of points, both ends included")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of points evaluated concurrently")

	return cmd
}

// runSweepCmd executes the sweep command.
func runSweepCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	opts := sweepOptions{
		parameter: v.GetString("vary"),
		from:      v.GetFloat64("from"),
		to:        v.GetFloat64("to"),
		steps:     v.GetInt("steps"),
	}
	if err := config.ValidateSweep(opts.from, opts.to, opts.steps); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSweep(ctx, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// runSweep evaluates every point and writes the sweep report.
func runSweep(ctx context.Context, cfg *config.Config, opts sweepOptions, stdout, stderr io.Writer, logger *slog.Logger) (err error) {
	req := pipeline.SweepRequest{
		Base:      newRequest(cfg),
		Parameter: opts.parameter,
		From:      opts.from,
		To:        opts.to,
		Steps:     opts.steps,
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewDefault(pipeline.StepConfig{Logger: logger}, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithRunFactory(func(r model.Request) *model.Run {
			return newRun(r, cfg.Description)
		}),
	)

	start := time.Now()
	sweep, err := pipeline.RunSweep(ctx, bp, req)
	if err != nil {
		return err
	}
	logger.Info("sweep completed",
		"points", len(sweep.Runs),
		"failed", sweep.Failed(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Fprintf(stderr, "Evaluated %d points (%d failed)\n", len(sweep.Runs), sweep.Failed())

	out, closeOut, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeWith(&err, closeOut)

	if _, err := newReportWriter(cfg, out).WriteSweep(sweep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
