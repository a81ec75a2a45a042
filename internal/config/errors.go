package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate functions and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidMass is returned when a mass is not a positive finite number.
	ErrInvalidMass = errors.New("invalid mass: must be a positive number of solar masses")

	// ErrInvalidSpin is returned when |a*| exceeds 1.
	ErrInvalidSpin = errors.New("invalid spin: must be between -1 and 1")

	// ErrInvalidCharge is returned when |Q*| exceeds 1.
	ErrInvalidCharge = errors.New("invalid charge: must be between -1 and 1")

	// ErrInvalidTheta is returned when the probe angle is not finite.
	ErrInvalidTheta = errors.New("invalid theta: must be a finite angle in radians")

	// ErrInvalidProbeRadius is returned when the probe radius is not positive.
	ErrInvalidProbeRadius = errors.New("invalid probe radius: must be positive (units of M)")

	// ErrInvalidAngularMomentum is returned when L is not finite.
	ErrInvalidAngularMomentum = errors.New("invalid angular momentum: must be finite (units of M)")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoRunsDir is returned when saving is enabled without a runs directory.
	ErrNoRunsDir = errors.New("no runs directory: set --runs-dir or disable --save")

	// ErrInvalidSteps is returned when a sweep has fewer than one point.
	ErrInvalidSteps = errors.New("invalid steps: must be at least 1")

	// ErrInvalidSweepRange is returned when a sweep bound leaves [-1, 1].
	ErrInvalidSweepRange = errors.New("invalid sweep range: bounds must be between -1 and 1")

	// ErrInvalidSamples is returned when a waveform has fewer than two samples.
	ErrInvalidSamples = errors.New("invalid samples: must be at least 2")

	// ErrPresetNotFound is returned when a named preset is not in the file.
	ErrPresetNotFound = errors.New("preset not found")
)
