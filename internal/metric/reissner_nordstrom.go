package metric

import "math"

// ReissnerNordstrom is the static, spherically symmetric, charged black hole.
type ReissnerNordstrom struct {
	base
}

var _ Spacetime = (*ReissnerNordstrom)(nil)

// NewReissnerNordstrom builds a charged black hole with |Q*| <= 1.
func NewReissnerNordstrom(massSolar, charge float64, opts ...Option) (*ReissnerNordstrom, error) {
	b, err := newBase("Charged BH", massSolar, 0, charge, opts)
	if err != nil {
		return nil, err
	}
	return &ReissnerNordstrom{base: b}, nil
}

// Kind implements Spacetime.
func (rn *ReissnerNordstrom) Kind() Kind { return KindReissnerNordstrom }

// EventHorizon returns r± = M ± sqrt(M² − Q²).
func (rn *ReissnerNordstrom) EventHorizon() Horizon {
	return horizons(rn.params.M, 0, rn.params.Q())
}

// ISCO returns the approximation M(6 − 2Q*²).
func (rn *ReissnerNordstrom) ISCO(bool) float64 {
	q := rn.params.ChargeStar
	return rn.params.M * (6 - 2*q*q)
}

// GravitationalRedshift uses g_tt = 1 − 2M/r + Q²/r². theta is ignored.
// g_tt turns positive again inside the Cauchy horizon, so the outer
// horizon bounds the sentinel rather than the sign of g_tt alone.
func (rn *ReissnerNordstrom) GravitationalRedshift(r, _ float64) float64 {
	m, q := rn.params.M, rn.params.Q()
	return redshift(r, staticLimit(m, 0, q, Equator), 1-2*m/r+q*q/(r*r))
}

// EffectivePotential returns (1 − 2M/r + Q²/r²)(1 + L²/r²).
func (rn *ReissnerNordstrom) EffectivePotential(r, l float64) (float64, error) {
	if err := checkRadius(r); err != nil {
		return math.NaN(), err
	}
	m, q := rn.params.M, rn.params.Q()
	return (1 - 2*m/r + q*q/(r*r)) * (1 + l*l/(r*r)), nil
}

// Ergosphere reports that a static black hole has none.
func (rn *ReissnerNordstrom) Ergosphere(float64) (float64, bool) {
	return 0, false
}

// Identify implements Spacetime.
func (rn *ReissnerNordstrom) Identify() TypeInfo {
	return TypeInfo{
		Type:        KindReissnerNordstrom.String(),
		Properties:  "Static, Spherically Symmetric, Charged",
		Singularity: "Point-like (Timelike)",
		Ergosphere:  "None",
	}
}
