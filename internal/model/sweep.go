package model

// Sweep is a series of runs that differ in one parameter.
type Sweep struct {
	// Parameter names the varied input, "spin" or "charge".
	Parameter string `json:"parameter"`

	// MassSolar is the fixed mass of every run.
	MassSolar float64 `json:"mass_solar"`

	// Values are the parameter values, one per run.
	Values []float64 `json:"values"`

	// Runs holds the evaluated runs in the same order as Values.
	Runs []*Run `json:"runs"`
}

// Failed returns the number of runs that stopped with an error.
func (s *Sweep) Failed() int {
	n := 0
	for _, r := range s.Runs {
		if r != nil && r.Failed() {
			n++
		}
	}
	return n
}
