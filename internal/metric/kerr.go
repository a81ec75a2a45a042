package metric

import "math"

// Kerr is the rotating, neutral black hole.
type Kerr struct {
	base
}

var _ Spacetime = (*Kerr)(nil)

// NewKerr builds a Kerr black hole with dimensionless spin |a*| <= 1.
// A negative spin describes the same hole rotating the other way.
func NewKerr(massSolar, spin float64, opts ...Option) (*Kerr, error) {
	b, err := newBase("Kerr BH", massSolar, spin, 0, opts)
	if err != nil {
		return nil, err
	}
	return &Kerr{base: b}, nil
}

// Kind implements Spacetime.
func (k *Kerr) Kind() Kind { return KindKerr }

// EventHorizon returns r± = M ± sqrt(M² − a²).
func (k *Kerr) EventHorizon() Horizon {
	return horizons(k.params.M, k.params.A(), 0)
}

// ISCO returns the Bardeen–Press–Teukolsky radius.
func (k *Kerr) ISCO(retrograde bool) float64 {
	return kerrISCO(k.params.M, k.params.SpinStar, retrograde)
}

// GravitationalRedshift uses g_tt = 1 − 2Mr/ρ² with ρ² = r² + a²cos²θ.
// The divergence surface is the ergosurface, not the horizon.
func (k *Kerr) GravitationalRedshift(r, theta float64) float64 {
	m, a := k.params.M, k.params.A()
	cos := math.Cos(theta)
	rho2 := r*r + a*a*cos*cos
	return redshift(r, staticLimit(m, a, 0, theta), 1-2*m*r/rho2)
}

// EffectivePotential returns the equatorial potential of a marginally
// bound (E = 1) particle:
//
//	V = 1 − 2M/r + L²/r² − 2M(L − a)²/r³
//
// It reduces to the Schwarzschild form when a = 0.
func (k *Kerr) EffectivePotential(r, l float64) (float64, error) {
	if err := checkRadius(r); err != nil {
		return math.NaN(), err
	}
	m, a := k.params.M, k.params.A()
	d := l - a
	return 1 - 2*m/r + l*l/(r*r) - 2*m*d*d/(r*r*r), nil
}

// Ergosphere returns M + sqrt(M² − a²cos²θ).
func (k *Kerr) Ergosphere(theta float64) (float64, bool) {
	return staticLimit(k.params.M, k.params.A(), 0, theta), true
}

// Identify implements Spacetime.
func (k *Kerr) Identify() TypeInfo {
	return TypeInfo{
		Type:        KindKerr.String(),
		Properties:  "Rotating, Axisymmetric, Neutral",
		Singularity: "Ring-like",
		Ergosphere:  "Present (Oblate)",
	}
}

// kerrISCO evaluates
//
//	Z1 = 1 + (1 − a²)^⅓ [(1 + a)^⅓ + (1 − a)^⅓]
//	Z2 = sqrt(3a² + Z1²)
//	r  = M (3 + Z2 ∓ sqrt((3 − Z1)(3 + Z1 + 2Z2)))
//
// with the minus sign for prograde orbits.
func kerrISCO(m, spin float64, retrograde bool) float64 {
	sign := -1.0
	if retrograde {
		sign = 1.0
	}
	z1 := 1 + math.Cbrt(1-spin*spin)*(math.Cbrt(1+spin)+math.Cbrt(1-spin))
	z2 := math.Sqrt(3*spin*spin + z1*z1)
	term := math.Sqrt(math.Max(0, (3-z1)*(3+z1+2*z2)))
	return m * (3 + z2 + sign*term)
}
