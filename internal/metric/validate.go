package metric

import (
	"fmt"
	"math"
)

// BoundTolerance absorbs rounding in a*² + Q*² so that inputs such as
// (0.6, 0.8) sit on the extremal bound instead of just past it.
const BoundTolerance = 1e-12

// validate is the construction check shared by every variant. It rejects
// naked singularities for all four variants alike; the classify package is
// the permissive path that only flags them.
func validate(massSolar, spin, charge float64) error {
	if math.IsNaN(massSolar) || math.IsInf(massSolar, 0) || massSolar <= 0 {
		return fmt.Errorf("%w: mass must be finite and positive, got %g", ErrInvalidParameter, massSolar)
	}
	if math.IsNaN(spin) || math.IsInf(spin, 0) {
		return fmt.Errorf("%w: spin must be finite, got %g", ErrInvalidParameter, spin)
	}
	if math.IsNaN(charge) || math.IsInf(charge, 0) {
		return fmt.Errorf("%w: charge must be finite, got %g", ErrInvalidParameter, charge)
	}
	if math.Abs(spin) > 1 {
		return fmt.Errorf("%w: |a*| = %g exceeds 1", ErrNakedSingularity, math.Abs(spin))
	}
	if math.Abs(charge) > 1 {
		return fmt.Errorf("%w: |Q*| = %g exceeds 1", ErrNakedSingularity, math.Abs(charge))
	}
	if sum := spin*spin + charge*charge; sum > 1+BoundTolerance {
		return fmt.Errorf("%w: a*^2 + Q*^2 = %g exceeds 1", ErrNakedSingularity, sum)
	}
	return nil
}
