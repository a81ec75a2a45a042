package units

// Constants is an immutable table of the fundamental constants needed by the
// metric, thermodynamics and waveform code. All values are SI.
type Constants struct {
	// G is the gravitational constant [m^3 kg^-1 s^-2].
	G float64 `json:"g"`

	// C is the speed of light in vacuum [m/s].
	C float64 `json:"c"`

	// SolarMass is the nominal solar mass [kg].
	SolarMass float64 `json:"solar_mass"`

	// HBar is the reduced Planck constant [J s].
	HBar float64 `json:"hbar"`

	// KB is the Boltzmann constant [J/K].
	KB float64 `json:"k_b"`

	// SigmaSB is the Stefan-Boltzmann constant [W m^-2 K^-4].
	SigmaSB float64 `json:"sigma_sb"`

	// WienB is Wien's displacement constant [m K].
	WienB float64 `json:"wien_b"`

	// Year is the Julian year [s].
	Year float64 `json:"year"`

	// Parsec [m].
	Parsec float64 `json:"parsec"`
}

// CODATA2018 returns the CODATA 2018 recommended values together with the
// IAU nominal solar mass and the Julian year.
func CODATA2018() Constants {
	return Constants{
		G:         6.67430e-11,
		C:         299792458.0,
		SolarMass: 1.98847e30,
		HBar:      1.054571817e-34,
		KB:        1.380649e-23,
		SigmaSB:   5.670374419e-8,
		WienB:     2.897771955e-3,
		Year:      31557600.0,
		Parsec:    3.0857e16,
	}
}

// IsZero reports whether the table was left uninitialized.
func (c Constants) IsZero() bool {
	return c == Constants{}
}
