package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nao1215/blackholecalc/internal/units"
)

const (
	// DefaultSamples is the number of samples in a generated series.
	DefaultSamples = 3000

	// DefaultStart is the first sample time in seconds.
	DefaultStart = -0.2

	// DefaultEnd is the last sample time in seconds.
	DefaultEnd = 0.05

	// TauFloor is the minimum time to coalescence used by the inspiral
	// amplitude and phase.
	TauFloor = 1e-5

	// MergerWindow is how long before t = 0 a sample counts as merger.
	MergerWindow = 2e-3
)

// Ringdown scaling is anchored at a 60 solar mass remnant.
const (
	referenceTotalMass = 60.0
	referenceRingHz    = 250.0
	referenceDecayS    = 0.004
	inspiralAmplitude  = 1e-21
)

// Phase labels the part of the signal a sample belongs to.
type Phase int

const (
	// PhaseInspiral is the slowly chirping part before merger.
	PhaseInspiral Phase = iota
	// PhaseMerger is the short stretch just before t = 0.
	PhaseMerger
	// PhaseRingdown is the damped oscillation after t = 0.
	PhaseRingdown
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMerger:
		return "merger"
	case PhaseRingdown:
		return "ringdown"
	default:
		return "inspiral"
	}
}

// Chirp is a generated strain series. Time[i] pairs with Strain[i].
type Chirp struct {
	Time   []float64 `json:"time"`
	Strain []float64 `json:"strain"`

	// ChirpMassSolar is (m1·m2)^(3/5) / (m1+m2)^(1/5) in solar masses.
	ChirpMassSolar float64 `json:"chirp_mass_solar"`

	// ChirpTimeSeconds is the chirp mass expressed as G·Mc/c³.
	ChirpTimeSeconds float64 `json:"chirp_time_s"`

	// RingFrequencyHz and RingDecaySeconds describe the ringdown.
	RingFrequencyHz  float64 `json:"ring_frequency_hz"`
	RingDecaySeconds float64 `json:"ring_decay_s"`
}

// Peak describes the sample with the largest absolute strain.
type Peak struct {
	Index  int     `json:"index"`
	Time   float64 `json:"time"`
	Strain float64 `json:"strain"`
}

// Option configures GenerateChirp.
type Option func(*settings)

type settings struct {
	samples    int
	start, end float64
	constants  units.Constants
}

// WithSamples sets the number of samples. Values below 2 are ignored.
func WithSamples(n int) Option {
	return func(s *settings) {
		if n >= 2 {
			s.samples = n
		}
	}
}

// WithWindow sets the time window in seconds. The window is ignored
// unless start < end.
func WithWindow(start, end float64) Option {
	return func(s *settings) {
		if start < end {
			s.start, s.end = start, end
		}
	}
}

// WithConstants overrides the physical constants.
func WithConstants(c units.Constants) Option {
	return func(s *settings) {
		s.constants = c
	}
}

// ChirpMass returns (m1·m2)^(3/5) / (m1+m2)^(1/5).
func ChirpMass(m1, m2 float64) float64 {
	return math.Pow(m1*m2, 3.0/5.0) / math.Pow(m1+m2, 1.0/5.0)
}

// GenerateChirp builds the strain series for component masses m1 and m2
// given in solar masses. Any positive masses produce a result.
func GenerateChirp(m1, m2 float64, opts ...Option) Chirp {
	cfg := settings{
		samples:   DefaultSamples,
		start:     DefaultStart,
		end:       DefaultEnd,
		constants: units.CODATA2018(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cv := units.NewConverter(cfg.constants)
	mcSolar := ChirpMass(m1, m2)
	mcSec := cv.SolarToSeconds(mcSolar)

	total := m1 + m2
	ringHz := referenceRingHz * (referenceTotalMass / total)
	decay := referenceDecayS * (total / referenceTotalMass)

	t := floats.Span(make([]float64, cfg.samples), cfg.start, cfg.end)
	h := make([]float64, len(t))

	seed := 0.0
	for i, ti := range t {
		if ti > 0 {
			h[i] = seed * math.Exp(-ti/decay) * math.Cos(2*math.Pi*ringHz*ti)
			continue
		}
		tau := math.Max(-ti, TauFloor)
		phase := -2 * math.Pow(5*mcSec/tau, 5.0/8.0)
		amp := inspiralAmplitude * mcSolar * math.Pow(tau, -0.25)
		h[i] = amp * math.Cos(phase)
		seed = h[i]
	}

	return Chirp{
		Time:             t,
		Strain:           h,
		ChirpMassSolar:   mcSolar,
		ChirpTimeSeconds: mcSec,
		RingFrequencyHz:  ringHz,
		RingDecaySeconds: decay,
	}
}

// Len returns the number of samples.
func (c Chirp) Len() int {
	return len(c.Time)
}

// Peak returns the sample with the largest |h|. It returns Index -1 for an
// empty series.
func (c Chirp) Peak() Peak {
	if len(c.Strain) == 0 {
		return Peak{Index: -1}
	}
	abs := make([]float64, len(c.Strain))
	for i, v := range c.Strain {
		abs[i] = math.Abs(v)
	}
	i := floats.MaxIdx(abs)
	return Peak{Index: i, Time: c.Time[i], Strain: c.Strain[i]}
}

// Phase reports which part of the signal sample i belongs to.
func (c Chirp) Phase(i int) Phase {
	ti := c.Time[i]
	switch {
	case ti > 0:
		return PhaseRingdown
	case ti > -MergerWindow:
		return PhaseMerger
	default:
		return PhaseInspiral
	}
}
