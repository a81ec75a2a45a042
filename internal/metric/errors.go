package metric

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a mass, spin, charge or radius is
	// outside the domain of the formulas.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotImplemented is returned by operations a variant intentionally
	// does not model. Callers may skip the value instead of failing a batch.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNakedSingularity is returned when spin and charge exceed the bound
	// a*^2 + Q*^2 <= 1 and no horizon would exist.
	ErrNakedSingularity = fmt.Errorf("%w: naked singularity", ErrInvalidParameter)
)
