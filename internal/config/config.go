package config

import (
	"math"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
	"github.com/nao1215/blackholecalc/internal/waveform"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "blackholecalc"

	// RunsDirName is the directory under the data dir holding saved runs.
	RunsDirName = "runs"

	// DefaultMassSolar is a typical stellar-mass black hole.
	DefaultMassSolar = 10.0

	// DefaultProbeRadius is the redshift probe radius in units of M.
	DefaultProbeRadius = model.DefaultProbeRadius

	// DefaultAngularMomentum is the effective-potential angular momentum
	// in units of M.
	DefaultAngularMomentum = model.DefaultAngularMomentum

	// DefaultBatchSize is the number of sweep points evaluated concurrently.
	DefaultBatchSize = 10

	// DefaultSweepFrom and DefaultSweepTo bound the default spin sweep.
	// The upper bound stays below 1 so the last point is not extremal.
	DefaultSweepFrom = 0.0
	DefaultSweepTo   = 0.99

	// DefaultSweepSteps is the number of points in a sweep.
	DefaultSweepSteps = 12

	// DefaultChirpM1 and DefaultChirpM2 are the GW150914 component masses.
	DefaultChirpM1 = 36.0
	DefaultChirpM2 = 29.0

	// DefaultChirpSamples is the number of waveform samples.
	DefaultChirpSamples = waveform.DefaultSamples
)

// Config holds all configuration options for blackholecalc.
// This struct is populated from CLI flags, environment variables and preset
// files and passed through the application via dependency injection rather
// than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. Commands only read the fields they need.
type Config struct {
	// MassSolar is the black hole mass in solar masses.
	MassSolar float64

	// Spin is the dimensionless spin a* = a/M.
	Spin float64

	// Charge is the dimensionless charge Q* = Q/M.
	Charge float64

	// Name is the run directory name. Empty means run_<id>.
	Name string

	// Description is free text stored with the run.
	Description string

	// Theta is the polar angle of the redshift probe in radians.
	Theta float64

	// ProbeRadius is the redshift probe radius in units of M.
	ProbeRadius float64

	// AngularMomentum is the test-particle angular momentum in units of M.
	AngularMomentum float64

	// Preset names an entry in the preset file to start from.
	Preset string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the preset file.
	// If empty, the tool searches for .blackholecalc in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Presets holds the presets loaded from the config file.
	Presets *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Save writes the run directory and indexes it in the history database.
	Save bool

	// RunsDir is the base directory for saved run directories.
	RunsDir string

	// DBDir is the directory path for the SQLite history database.
	DBDir string

	// BatchSize is the number of sweep points evaluated concurrently.
	BatchSize int
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (mass, probe radius).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MassSolar:       DefaultMassSolar,
		Theta:           metric.Equator,
		ProbeRadius:     DefaultProbeRadius,
		AngularMomentum: DefaultAngularMomentum,
		Save:            true,
		RunsDir:         XDGRunsDir(),
		DBDir:           XDGDataDir(),
		BatchSize:       DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for blackholecalc.
// On Linux: ~/.local/share/blackholecalc
// On macOS: ~/Library/Application Support/blackholecalc
// On Windows: %LOCALAPPDATA%\blackholecalc
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGRunsDir returns the default base directory for saved runs.
func XDGRunsDir() string {
	return filepath.Join(XDGDataDir(), RunsDirName)
}

// XDGConfigDir returns the XDG config directory for blackholecalc.
// On Linux: ~/.config/blackholecalc
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// Parameters that are individually in range but together describe a naked
// singularity are not rejected here: the evaluation reports them with a
// classification so the user sees why.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if !finite(c.MassSolar) || c.MassSolar <= 0 {
		return ErrInvalidMass
	}

	if !finite(c.Spin) || math.Abs(c.Spin) > 1 {
		return ErrInvalidSpin
	}

	if !finite(c.Charge) || math.Abs(c.Charge) > 1 {
		return ErrInvalidCharge
	}

	if !finite(c.Theta) {
		return ErrInvalidTheta
	}

	if !finite(c.ProbeRadius) || c.ProbeRadius <= 0 {
		return ErrInvalidProbeRadius
	}

	if !finite(c.AngularMomentum) {
		return ErrInvalidAngularMomentum
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Save && c.RunsDir == "" {
		return ErrNoRunsDir
	}

	return nil
}

// ValidateSweep checks the range and resolution of a parameter sweep.
func ValidateSweep(from, to float64, steps int) error {
	if steps < 1 {
		return ErrInvalidSteps
	}
	if !finite(from) || !finite(to) || math.Abs(from) > 1 || math.Abs(to) > 1 {
		return ErrInvalidSweepRange
	}
	return nil
}

// ValidateChirp checks the inputs of a waveform synthesis.
func ValidateChirp(m1, m2 float64, samples int) error {
	if !finite(m1) || !finite(m2) || m1 <= 0 || m2 <= 0 {
		return ErrInvalidMass
	}
	if samples < 2 {
		return ErrInvalidSamples
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
