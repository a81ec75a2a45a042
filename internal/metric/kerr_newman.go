package metric

import (
	"fmt"
	"math"
)

// KerrNewman is the general stationary solution: rotating and charged.
type KerrNewman struct {
	base
}

var _ Spacetime = (*KerrNewman)(nil)

// NewKerrNewman builds a rotating, charged black hole with a*² + Q*² <= 1.
func NewKerrNewman(massSolar, spin, charge float64, opts ...Option) (*KerrNewman, error) {
	b, err := newBase("Kerr-Newman BH", massSolar, spin, charge, opts)
	if err != nil {
		return nil, err
	}
	return &KerrNewman{base: b}, nil
}

// Kind implements Spacetime.
func (kn *KerrNewman) Kind() Kind { return KindKerrNewman }

// EventHorizon returns r± = M ± sqrt(M² − a² − Q²).
func (kn *KerrNewman) EventHorizon() Horizon {
	return horizons(kn.params.M, kn.params.A(), kn.params.Q())
}

// ISCO uses the Kerr formula with the spin alone. The charge contribution
// is not modeled; treat the value as an approximation.
func (kn *KerrNewman) ISCO(retrograde bool) float64 {
	return kerrISCO(kn.params.M, kn.params.SpinStar, retrograde)
}

// GravitationalRedshift uses g_tt = 1 − (2Mr − Q²)/ρ².
func (kn *KerrNewman) GravitationalRedshift(r, theta float64) float64 {
	m, a, q := kn.params.M, kn.params.A(), kn.params.Q()
	cos := math.Cos(theta)
	rho2 := r*r + a*a*cos*cos
	return redshift(r, staticLimit(m, a, q, theta), 1-(2*m*r-q*q)/rho2)
}

// EffectivePotential is not modeled for Kerr-Newman.
func (kn *KerrNewman) EffectivePotential(r, _ float64) (float64, error) {
	if err := checkRadius(r); err != nil {
		return math.NaN(), err
	}
	return math.NaN(), fmt.Errorf("%w: full Kerr-Newman effective potential", ErrNotImplemented)
}

// Ergosphere returns M + sqrt(M² − a²cos²θ − Q²).
func (kn *KerrNewman) Ergosphere(theta float64) (float64, bool) {
	return staticLimit(kn.params.M, kn.params.A(), kn.params.Q(), theta), true
}

// Identify implements Spacetime.
func (kn *KerrNewman) Identify() TypeInfo {
	return TypeInfo{
		Type:        KindKerrNewman.String(),
		Properties:  "Rotating, Axisymmetric, Charged",
		Singularity: "Ring-like",
		Ergosphere:  "Present (Complex)",
	}
}
