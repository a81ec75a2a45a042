package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/report"
)

// addModelFlags registers the black hole parameter flags.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("mass", "M", config.DefaultMassSolar,
		"Mass in solar masses")
	cmd.Flags().Float64P("spin", "a", 0,
		"Dimensionless spin a* = a/M, between -1 and 1")
	cmd.Flags().Float64P("charge", "q", 0,
		"Dimensionless charge Q* = Q/M, between -1 and 1")
	cmd.Flags().StringP("preset", "p", "",
		"Start from a named preset in the configuration file")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .blackholecalc in current or home directory)")
	cmd.Flags().String("description", "",
		"Free text stored with the run")
}

// addProbeFlags registers the redshift and potential probe flags.
func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("theta", config.NewConfig().Theta,
		"Polar angle of the redshift probe in radians")
	cmd.Flags().Float64("radius", config.DefaultProbeRadius,
		"Redshift probe radius in units of M")
	cmd.Flags().Float64("angular-momentum", config.DefaultAngularMomentum,
		"Test-particle angular momentum in units of M")
}

// addReportFlags registers the report format and destination flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// buildConfig creates a Config from defaults, the preset file, environment
// variables and flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = v.GetString("config")
	cfg.Preset = v.GetString("preset")

	if err := applyPreset(cfg); err != nil {
		return nil, err
	}

	floats := map[string]*float64{
		"mass":             &cfg.MassSolar,
		"spin":             &cfg.Spin,
		"charge":           &cfg.Charge,
		"theta":            &cfg.Theta,
		"radius":           &cfg.ProbeRadius,
		"angular-momentum": &cfg.AngularMomentum,
	}
	for key, dst := range floats {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}
	if v.IsSet("description") {
		cfg.Description = v.GetString("description")
	}
	if v.IsSet("batch") {
		cfg.BatchSize = v.GetInt("batch")
	}

	cfg.Name = v.GetString("name")
	cfg.JSONReport = v.GetBool("json")
	cfg.MarkdownReport = v.GetBool("markdown")
	cfg.ReportFile = v.GetString("output")
	cfg.Save = v.GetBool("save")
	if dir := v.GetString("runs-dir"); dir != "" {
		cfg.RunsDir = dir
	}
	if dir := v.GetString("db-dir"); dir != "" {
		cfg.DBDir = dir
	}

	return cfg, nil
}

// applyPreset loads the configuration file and applies the selected preset.
// If the user explicitly specified a file or preset, a missing file is an
// error. Otherwise the file defaults are applied when a file is found.
func applyPreset(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		if cfg.Preset != "" {
			return fmt.Errorf("%w: %q (no configuration file found)", config.ErrPresetNotFound, cfg.Preset)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.Presets = cf

	p, err := cf.GetPreset(cfg.Preset)
	if err != nil {
		return err
	}
	p.Apply(cfg)
	return nil
}

// openOutput returns the report destination: the file at path, or stdout
// when path is empty. The returned close function is always non-nil.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the report format requested in cfg.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(w, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w,
			report.WithVerbose(cfg.Verbose),
			report.WithShowEmpty(cfg.Verbose),
		)
	}
}

// closeWith closes c and joins its error into err.
func closeWith(err *error, c func() error) {
	*err = errors.Join(*err, c())
}
