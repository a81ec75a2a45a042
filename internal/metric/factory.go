package metric

import "math"

// ZeroTolerance is the magnitude below which a spin or charge is treated
// as exactly zero when selecting a variant.
const ZeroTolerance = 1e-12

// Input describes a black hole before a variant has been chosen.
type Input struct {
	Name      string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	MassSolar float64 `json:"mass_solar" yaml:"mass" toml:"mass"`
	Spin      float64 `json:"spin" yaml:"spin,omitempty" toml:"spin,omitempty"`
	Charge    float64 `json:"charge" yaml:"charge,omitempty" toml:"charge,omitempty"`
}

// KindFor returns the variant New would build for the input.
func KindFor(in Input) Kind {
	spinning := math.Abs(in.Spin) >= ZeroTolerance
	charged := math.Abs(in.Charge) >= ZeroTolerance
	switch {
	case spinning && charged:
		return KindKerrNewman
	case spinning:
		return KindKerr
	case charged:
		return KindReissnerNordstrom
	default:
		return KindSchwarzschild
	}
}

// New builds the simplest variant that represents the input. Spin or
// charge below ZeroTolerance selects the corresponding static or neutral
// solution.
func New(in Input, opts ...Option) (Spacetime, error) {
	if in.Name != "" {
		opts = append([]Option{WithName(in.Name)}, opts...)
	}

	var (
		s   Spacetime
		err error
	)
	switch KindFor(in) {
	case KindKerrNewman:
		s, err = unwrap(NewKerrNewman(in.MassSolar, in.Spin, in.Charge, opts...))
	case KindKerr:
		s, err = unwrap(NewKerr(in.MassSolar, in.Spin, opts...))
	case KindReissnerNordstrom:
		s, err = unwrap(NewReissnerNordstrom(in.MassSolar, in.Charge, opts...))
	default:
		s, err = unwrap(NewSchwarzschild(in.MassSolar, opts...))
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// unwrap keeps a typed nil pointer from escaping as a non-nil interface.
func unwrap[T Spacetime](v T, err error) (Spacetime, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
