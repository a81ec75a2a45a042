package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nao1215/blackholecalc/internal/classify"
	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
	"github.com/nao1215/blackholecalc/internal/thermo"
	"github.com/nao1215/blackholecalc/internal/units"
)

// ErrNoModel is returned by steps that need a model when the build step
// has not produced one.
var ErrNoModel = errors.New("no model has been built")

// extremalSeparation is the horizon separation, in units of M, below which
// a hole is reported as extremal.
const extremalSeparation = 1e-6

// Assumptions attached to every run.
const (
	AssumptionVacuum     = "Stationary vacuum (electro-vacuum for charged holes) solution; no accretion or external fields."
	AssumptionGeometric  = "Geometric units G = c = 1 internally; inputs and outputs converted with CODATA 2018 constants."
	AssumptionHawking    = "Hawking temperature from the Schwarzschild approximation T = 6.169e-8 K / M, rescaled by surface gravity for rotating holes."
	AssumptionLuminosity = "Luminosity is a black-body estimate without greybody factors."
	AssumptionKNISCO     = "Kerr-Newman ISCO uses the Kerr formula; the charge contribution is neglected."
	AssumptionEquatorial = "Effective potential is the equatorial, marginally bound (E = 1) form."
)

// StepConfig carries the settings shared by the default steps.
type StepConfig struct {
	// Constants is the constant table models are built with.
	// The zero value selects CODATA 2018.
	Constants units.Constants

	// Logger receives step-level debug output. Nil selects slog.Default().
	Logger *slog.Logger
}

func (c StepConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// DefaultSteps returns the full evaluation sequence.
func DefaultSteps(cfg StepConfig) []Step {
	return []Step{
		NewClassifyStep(cfg),
		NewBuildStep(cfg),
		NewHorizonStep(cfg),
		NewISCOStep(cfg),
		NewErgosphereStep(cfg),
		NewRedshiftStep(cfg),
		NewPotentialStep(cfg),
		NewThermoStep(cfg),
	}
}

// ClassifyStep records the classifier verdict. It never fails: a naked
// singularity is reported as a CAUTION and left to the build step to reject.
type ClassifyStep struct {
	logger *slog.Logger
}

// NewClassifyStep creates a new classification step.
func NewClassifyStep(cfg StepConfig) *ClassifyStep {
	return &ClassifyStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string { return "classify" }

// Do executes the classification step.
func (s *ClassifyStep) Do(_ context.Context, run *model.Run) error {
	in := run.Request.Input
	rec := classify.Classify(in.MassSolar, in.Spin, in.Charge)
	run.Classification = &rec

	if !rec.IsPhysical {
		run.AddNotice(model.LevelCaution, s.Name(),
			fmt.Sprintf("spin² + charge² = %.6g exceeds 1: the parameters describe a naked singularity, not a black hole",
				in.Spin*in.Spin+in.Charge*in.Charge))
	}
	s.logger.Debug("classified", "type", rec.Type, "physical", rec.IsPhysical)
	return nil
}

// BuildStep records the inputs and constructs the spacetime model.
// Invalid parameters fail the run here.
type BuildStep struct {
	constants units.Constants
	logger    *slog.Logger
}

// NewBuildStep creates a new model construction step.
func NewBuildStep(cfg StepConfig) *BuildStep {
	c := cfg.Constants
	if c.IsZero() {
		c = units.CODATA2018()
	}
	return &BuildStep{constants: c, logger: cfg.logger()}
}

// Name returns the step name.
func (s *BuildStep) Name() string { return "build_model" }

// Do executes the model construction step.
func (s *BuildStep) Do(_ context.Context, run *model.Run) error {
	req := run.Request
	run.Inputs.Set(model.InputMassSolar, req.Input.MassSolar, model.UnitSolarMass)
	run.Inputs.Set(model.InputSpin, req.Input.Spin, model.UnitDimensionless)
	run.Inputs.Set(model.InputCharge, req.Input.Charge, model.UnitDimensionless)
	run.Inputs.Set(model.InputTheta, req.Theta, model.UnitRadians)
	run.Inputs.Set(model.InputProbeRadius, req.ProbeRadius, model.UnitGeometricMass)
	run.Inputs.Set(model.InputAngularMomentum, req.AngularMomentum, model.UnitGeometricMass)

	st, err := metric.New(req.Input, metric.WithConstants(s.constants))
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}

	run.Spacetime = st
	run.Provenance.ModelClass = st.Kind().String()
	info := st.Identify()
	run.TypeInfo = &info
	run.AddAssumption(AssumptionVacuum)
	run.AddAssumption(AssumptionGeometric)
	run.Outputs.Set(model.OutputGeometricMass, st.Params().M, model.UnitMeters)

	s.logger.Debug("model built", "kind", st.Kind().String(), "M", st.Params().M)
	return nil
}

// HorizonStep records the event horizon and, where present, the inner horizon.
type HorizonStep struct {
	logger *slog.Logger
}

// NewHorizonStep creates a new horizon step.
func NewHorizonStep(cfg StepConfig) *HorizonStep {
	return &HorizonStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *HorizonStep) Name() string { return "horizon" }

// Do executes the horizon step.
func (s *HorizonStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	h := st.EventHorizon()
	run.Outputs.Set(model.OutputHorizonRadius, h.Outer, model.UnitMeters)
	if h.HasInner {
		run.Outputs.Set(model.OutputInnerHorizonRadius, h.Inner, model.UnitMeters)
		if h.Separation() < extremalSeparation*st.Params().M {
			run.AddNotice(model.LevelWarning, s.Name(),
				"inner and outer horizons coincide: the hole is extremal and its Hawking temperature vanishes")
		}
	}
	s.logger.Debug("horizon",
		"outer", h.Outer,
		"inner", h.Inner,
		"outer_M", st.Params().ToGeometricRadius(h.Outer),
	)
	return nil
}

// ISCOStep records the prograde and retrograde innermost stable circular orbits.
type ISCOStep struct {
	logger *slog.Logger
}

// NewISCOStep creates a new ISCO step.
func NewISCOStep(cfg StepConfig) *ISCOStep {
	return &ISCOStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *ISCOStep) Name() string { return "isco" }

// Do executes the ISCO step.
func (s *ISCOStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	pro, retro := st.ISCO(false), st.ISCO(true)
	run.Outputs.Set(model.OutputISCORadius, pro, model.UnitMeters)
	run.Outputs.Set(model.OutputISCORetrograde, retro, model.UnitMeters)
	if st.Kind() == metric.KindKerrNewman {
		run.AddAssumption(AssumptionKNISCO)
	}
	s.logger.Debug("isco", "prograde", pro, "retrograde", retro)
	return nil
}

// ErgosphereStep records the ergosurface radius at the equator and the pole.
// Variants without an ergosphere record nothing.
type ErgosphereStep struct {
	logger *slog.Logger
}

// NewErgosphereStep creates a new ergosphere step.
func NewErgosphereStep(cfg StepConfig) *ErgosphereStep {
	return &ErgosphereStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *ErgosphereStep) Name() string { return "ergosphere" }

// Do executes the ergosphere step.
func (s *ErgosphereStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	eq, ok := st.Ergosphere(metric.Equator)
	if !ok {
		s.logger.Debug("no ergosphere", "kind", st.Kind().String())
		return nil
	}
	pole, _ := st.Ergosphere(0)
	run.Outputs.Set(model.OutputErgosphereEquator, eq, model.UnitMeters)
	run.Outputs.Set(model.OutputErgospherePole, pole, model.UnitMeters)
	s.logger.Debug("ergosphere", "equator", eq, "pole", pole)
	return nil
}

// RedshiftStep records the redshift of a static emitter at the probe radius.
type RedshiftStep struct {
	logger *slog.Logger
}

// NewRedshiftStep creates a new redshift probe step.
func NewRedshiftStep(cfg StepConfig) *RedshiftStep {
	return &RedshiftStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *RedshiftStep) Name() string { return "redshift" }

// Do executes the redshift probe step.
func (s *RedshiftStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	r := run.Request.ProbeRadius * st.Params().M
	z := st.GravitationalRedshift(r, run.Request.Theta)
	run.Outputs.Set(model.OutputRedshift, z, model.UnitDimensionless)
	if math.IsInf(z, 1) {
		run.AddNotice(model.LevelInfo, s.Name(),
			fmt.Sprintf("probe at r = %gM is inside the static limit; a static emitter cannot exist there", run.Request.ProbeRadius))
	}
	s.logger.Debug("redshift", "r", r, "z", z)
	return nil
}

// PotentialStep records the effective potential at the probe radius.
// Variants without a potential record a missing value and report
// metric.ErrNotImplemented.
type PotentialStep struct {
	logger *slog.Logger
}

// NewPotentialStep creates a new effective potential step.
func NewPotentialStep(cfg StepConfig) *PotentialStep {
	return &PotentialStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *PotentialStep) Name() string { return "effective_potential" }

// Do executes the effective potential step.
func (s *PotentialStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	m := st.Params().M
	v, err := st.EffectivePotential(run.Request.ProbeRadius*m, run.Request.AngularMomentum*m)
	if err != nil {
		if errors.Is(err, metric.ErrNotImplemented) {
			run.Outputs.SetMissing(model.OutputEffectivePotential)
		}
		return fmt.Errorf("effective potential: %w", err)
	}
	run.Outputs.Set(model.OutputEffectivePotential, v, model.UnitDimensionless)
	if st.Kind().Rotating() {
		run.AddAssumption(AssumptionEquatorial)
	}
	s.logger.Debug("effective potential", "v", v)
	return nil
}

// ThermoStep records the Hawking temperature and derived quantities.
type ThermoStep struct {
	logger *slog.Logger
}

// NewThermoStep creates a new thermodynamics step.
func NewThermoStep(cfg StepConfig) *ThermoStep {
	return &ThermoStep{logger: cfg.logger()}
}

// Name returns the step name.
func (s *ThermoStep) Name() string { return "thermodynamics" }

// Do executes the thermodynamics step.
func (s *ThermoStep) Do(_ context.Context, run *model.Run) error {
	st := run.Spacetime
	if st == nil {
		return ErrNoModel
	}
	res := thermo.Analyze(st)
	for _, q := range res.Quantities() {
		run.Outputs.Set(q.Key, q.Value, q.Unit)
	}
	run.AddAssumption(AssumptionHawking)
	run.AddAssumption(AssumptionLuminosity)
	s.logger.Debug("thermodynamics",
		"temperature", res.TemperatureK,
		"lifetime_yr", res.LifetimeYears,
	)
	return nil
}
