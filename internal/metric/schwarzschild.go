package metric

import "math"

// Schwarzschild is the static, spherically symmetric, neutral black hole.
type Schwarzschild struct {
	base
}

var _ Spacetime = (*Schwarzschild)(nil)

// NewSchwarzschild builds a Schwarzschild black hole of the given mass in
// solar masses.
func NewSchwarzschild(massSolar float64, opts ...Option) (*Schwarzschild, error) {
	b, err := newBase("Schwarzschild BH", massSolar, 0, 0, opts)
	if err != nil {
		return nil, err
	}
	return &Schwarzschild{base: b}, nil
}

// Kind implements Spacetime.
func (s *Schwarzschild) Kind() Kind { return KindSchwarzschild }

// EventHorizon returns the single horizon r_s = 2M.
func (s *Schwarzschild) EventHorizon() Horizon {
	return Horizon{Outer: 2 * s.params.M}
}

// ISCO returns 6M regardless of orbit direction.
func (s *Schwarzschild) ISCO(bool) float64 {
	return 6 * s.params.M
}

// GravitationalRedshift uses g_tt = 1 − 2M/r. theta is ignored.
func (s *Schwarzschild) GravitationalRedshift(r, _ float64) float64 {
	m := s.params.M
	return redshift(r, 2*m, 1-2*m/r)
}

// EffectivePotential returns (1 − 2M/r)(1 + L²/r²).
func (s *Schwarzschild) EffectivePotential(r, l float64) (float64, error) {
	if err := checkRadius(r); err != nil {
		return math.NaN(), err
	}
	m := s.params.M
	return (1 - 2*m/r) * (1 + l*l/(r*r)), nil
}

// Ergosphere reports that a static black hole has none.
func (s *Schwarzschild) Ergosphere(float64) (float64, bool) {
	return 0, false
}

// Identify implements Spacetime.
func (s *Schwarzschild) Identify() TypeInfo {
	return TypeInfo{
		Type:        KindSchwarzschild.String(),
		Properties:  "Static, Spherically Symmetric, Neutral",
		Singularity: "Point-like",
		Ergosphere:  "None",
	}
}
