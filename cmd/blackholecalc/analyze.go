package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/database"
	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
	"github.com/nao1215/blackholecalc/internal/pipeline"
	"github.com/nao1215/blackholecalc/internal/runstore"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate a single black hole",
		Long: `Analyze builds the black hole described by mass, spin and charge and reports:
- Event and inner horizons
- Prograde and retrograde ISCO radii
- Ergosphere extent at the equator and pole
- Gravitational redshift at a probe radius
- Effective potential at the probe radius
- Hawking temperature, entropy, luminosity and evaporation lifetime

The solution is chosen from the parameters: zero spin and charge gives
Schwarzschild, spin only Kerr, charge only Reissner-Nordström and both
Kerr-Newman. Parameters with a*² + Q*² > 1 describe a naked singularity and
are reported but not evaluated.

Runs are saved under the runs directory as inputs.json, outputs.json and
metadata.json and indexed in the history database. Use --save=false for a
dry run.

Examples:
  # Schwarzschild black hole of 10 solar masses
  blackholecalc analyze --mass 10

  # Near-extremal Kerr black hole, Markdown report
  blackholecalc analyze -M 4.3e6 -a 0.998 --markdown

  # Start from a preset and override the spin
  blackholecalc analyze --preset sgr-a --spin 0.5

Configuration file (.blackholecalc) example:
  defaults:
    radius: 10
  presets:
    sgr-a:
      mass: 4.3e6
      spin: 0.9
      description: "Milky Way centre"`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	addModelFlags(cmd)
	addProbeFlags(cmd)
	addReportFlags(cmd)

	cmd.Flags().String("name", "",
		"Run directory name (default: run_<id>)")
	cmd.Flags().Bool("save", true,
		"Save the run directory and index it in the history database")
	cmd.Flags().String("runs-dir", "",
		"Base directory for saved runs (default: XDG data dir)")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data dir)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// newRequest converts the configuration into an evaluation request.
func newRequest(cfg *config.Config) model.Request {
	return model.Request{
		Input: metric.Input{
			MassSolar: cfg.MassSolar,
			Spin:      cfg.Spin,
			Charge:    cfg.Charge,
		},
		Theta:           cfg.Theta,
		ProbeRadius:     cfg.ProbeRadius,
		AngularMomentum: cfg.AngularMomentum,
	}
}

// newRun creates a run stamped with this binary's version.
func newRun(req model.Request, description string) *model.Run {
	run := model.NewRun(req, description)
	run.Provenance.LibraryVersion = getVersion()
	return run
}

// runAnalyze evaluates one black hole, persists it when requested and
// writes the report. A run that fails validation is still reported, then
// its error is returned.
func runAnalyze(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) (err error) {
	run := newRun(newRequest(cfg), cfg.Description)
	if cfg.Name != "" {
		run.Name = cfg.Name
	}

	logger.Info("starting evaluation",
		"run", run.Name,
		"mass", cfg.MassSolar,
		"spin", cfg.Spin,
		"charge", cfg.Charge,
	)

	p := pipeline.NewDefault(pipeline.StepConfig{Logger: logger}, pipeline.WithLogger(logger))
	execErr := p.Execute(ctx, run)

	if execErr == nil && cfg.Save {
		dir, err := saveRun(ctx, cfg, run, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved %s to %s\n", run.Name, dir)
	}

	out, closeOut, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeWith(&err, closeOut)

	if _, err := newReportWriter(cfg, out).Write(run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if execErr != nil {
		return fmt.Errorf("evaluation failed: %w", execErr)
	}
	return nil
}

// saveRun writes the run directory and indexes it in the history database.
func saveRun(ctx context.Context, cfg *config.Config, run *model.Run, logger *slog.Logger) (string, error) {
	dir, err := runstore.Save(cfg.RunsDir, run)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveRun(ctx, run, dir); err != nil {
		return "", fmt.Errorf("failed to index run: %w", err)
	}

	logger.Info("run saved", "dir", dir, "db", db.Path())
	return dir, nil
}
