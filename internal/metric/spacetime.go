package metric

import (
	"fmt"
	"math"

	"github.com/nao1215/blackholecalc/internal/units"
)

// Equator is the polar angle of the equatorial plane.
const Equator = math.Pi / 2

// Kind identifies a spacetime variant.
type Kind int

const (
	// KindSchwarzschild is the static, neutral solution.
	KindSchwarzschild Kind = iota
	// KindKerr is the rotating, neutral solution.
	KindKerr
	// KindReissnerNordstrom is the static, charged solution.
	KindReissnerNordstrom
	// KindKerrNewman is the rotating, charged solution.
	KindKerrNewman
)

// String returns the conventional name of the solution.
func (k Kind) String() string {
	switch k {
	case KindSchwarzschild:
		return "Schwarzschild"
	case KindKerr:
		return "Kerr"
	case KindReissnerNordstrom:
		return "Reissner-Nordström"
	case KindKerrNewman:
		return "Kerr-Newman"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rotating reports whether the variant carries angular momentum.
func (k Kind) Rotating() bool {
	return k == KindKerr || k == KindKerrNewman
}

// Charged reports whether the variant carries electric charge.
func (k Kind) Charged() bool {
	return k == KindReissnerNordstrom || k == KindKerrNewman
}

// Params are the input and derived parameters of one black hole.
type Params struct {
	// Name is a display label.
	Name string `json:"name"`

	// MassSolar is the mass in solar masses.
	MassSolar float64 `json:"mass_solar"`

	// MassKg is the mass in kilograms.
	MassKg float64 `json:"mass_kg"`

	// M is the geometric mass G*m/c^2 in meters.
	M float64 `json:"geometric_mass_m"`

	// SpinStar is the dimensionless spin a* (zero for static variants).
	SpinStar float64 `json:"spin_star"`

	// ChargeStar is the dimensionless charge Q* (zero for neutral variants).
	ChargeStar float64 `json:"charge_star"`
}

// A returns the spin length a = a*·M in meters.
func (p Params) A() float64 {
	return p.SpinStar * p.M
}

// Q returns the charge length Q = Q*·M in meters.
func (p Params) Q() float64 {
	return p.ChargeStar * p.M
}

// ToGeometricRadius converts a radius in meters to units of M.
func (p Params) ToGeometricRadius(r float64) float64 {
	if p.M == 0 {
		return 0
	}
	return r / p.M
}

// Horizon holds the horizon radii of a black hole in meters.
type Horizon struct {
	// Outer is the event horizon r+.
	Outer float64 `json:"outer"`

	// Inner is the Cauchy horizon r-. Meaningful only when HasInner is true.
	Inner float64 `json:"inner"`

	// HasInner is false for Schwarzschild, which has a single horizon.
	HasInner bool `json:"has_inner"`
}

// Separation returns r+ - r-, which closes to zero at extremality.
func (h Horizon) Separation() float64 {
	if !h.HasInner {
		return h.Outer
	}
	return h.Outer - h.Inner
}

// TypeInfo is the fixed qualitative description of a variant.
type TypeInfo struct {
	Type        string `json:"type"`
	Properties  string `json:"properties"`
	Singularity string `json:"singularity"`
	Ergosphere  string `json:"ergosphere"`
}

// Spacetime is the capability set shared by every black hole variant.
// The set of implementations is closed to this package.
type Spacetime interface {
	// Kind reports which solution this is.
	Kind() Kind

	// Params returns the input and derived parameters.
	Params() Params

	// Constants returns the constant table the model was built with.
	Constants() units.Constants

	// EventHorizon returns the outer and, where present, inner horizon.
	EventHorizon() Horizon

	// ISCO returns the innermost stable circular orbit radius in meters.
	// retrograde selects the counter-rotating orbit on spinning variants.
	ISCO(retrograde bool) float64

	// GravitationalRedshift returns z = 1/sqrt(g_tt) - 1 for a static
	// emitter at radius r and polar angle theta. It returns +Inf at or
	// inside the static limit.
	GravitationalRedshift(r, theta float64) float64

	// EffectivePotential returns the radial potential of a massive test
	// particle with specific angular momentum l (meters) at radius r.
	EffectivePotential(r, l float64) (float64, error)

	// Ergosphere returns the outer ergosurface radius at polar angle theta.
	// ok is false for variants without an ergosphere.
	Ergosphere(theta float64) (radius float64, ok bool)

	// Identify returns the fixed qualitative description of the variant.
	Identify() TypeInfo

	// Description returns a one-line label such as "Kerr BH (M=1.00e+01 M_sun)".
	Description() string

	sealed()
}

// Option configures a spacetime at construction.
type Option func(*options)

type options struct {
	name      string
	constants units.Constants
}

// WithName sets the display label.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConstants sets the constant table. The default is units.CODATA2018.
func WithConstants(c units.Constants) Option {
	return func(o *options) {
		o.constants = c
	}
}

// base carries the state every variant shares.
type base struct {
	params    Params
	constants units.Constants
}

func newBase(defaultName string, massSolar, spin, charge float64, opts []Option) (base, error) {
	if err := validate(massSolar, spin, charge); err != nil {
		return base{}, err
	}

	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = defaultName
	}

	cv := units.NewConverter(o.constants)
	massKg := cv.SolarToKg(massSolar)

	return base{
		params: Params{
			Name:       o.name,
			MassSolar:  massSolar,
			MassKg:     massKg,
			M:          cv.MassSIToGeometric(massKg),
			SpinStar:   spin,
			ChargeStar: charge,
		},
		constants: cv.Constants(),
	}, nil
}

// Params implements Spacetime.
func (b base) Params() Params { return b.params }

// Constants implements Spacetime.
func (b base) Constants() units.Constants { return b.constants }

// Description implements Spacetime.
func (b base) Description() string {
	return fmt.Sprintf("%s (M=%.2e M_sun)", b.params.Name, b.params.MassSolar)
}

func (base) sealed() {}

// horizons returns r± = M ± sqrt(M² − a² − Q²). Validation guarantees the
// discriminant is non-negative up to rounding at extremality.
func horizons(m, a, q float64) Horizon {
	root := math.Sqrt(math.Max(0, m*m-a*a-q*q))
	return Horizon{Outer: m + root, Inner: m - root, HasInner: true}
}

// staticLimit returns the outer root of g_tt = 0:
// M + sqrt(M² − a²cos²θ − Q²).
func staticLimit(m, a, q, theta float64) float64 {
	cos := math.Cos(theta)
	return m + math.Sqrt(math.Max(0, m*m-a*a*cos*cos-q*q))
}

// redshift evaluates z = 1/sqrt(gtt) − 1 with the +Inf sentinel at or
// inside the static limit. The negated comparison also maps NaN to +Inf.
func redshift(r, limit, gtt float64) float64 {
	if !(r > limit) || !(gtt > 0) {
		return math.Inf(1)
	}
	return 1/math.Sqrt(gtt) - 1
}

func checkRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: radius must be finite and positive, got %g", ErrInvalidParameter, r)
	}
	return nil
}
