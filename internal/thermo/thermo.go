package thermo

import (
	"math"

	"github.com/nao1215/blackholecalc/internal/metric"
)

const (
	// SchwarzschildTemperatureK is the Hawking temperature of a one solar
	// mass Schwarzschild black hole in kelvin.
	SchwarzschildTemperatureK = 6.169e-8

	// SchwarzschildLifetimeS is the evaporation time of a one solar mass
	// Schwarzschild black hole in seconds. Lifetime scales with mass cubed.
	SchwarzschildLifetimeS = 2.098e67
)

// Result holds the quantities derived by Analyze.
type Result struct {
	TemperatureK    float64 `json:"temperature_k"`
	EntropyJPerK    float64 `json:"entropy_j_per_k"`
	LuminosityW     float64 `json:"luminosity_w"`
	PeakWavelengthM float64 `json:"peak_wavelength_m"`
	LifetimeSeconds float64 `json:"lifetime_s"`
	LifetimeYears   float64 `json:"lifetime_yr"`
	HorizonAreaM2   float64 `json:"horizon_area_m2"`
}

// Quantity is one named value of a Result.
type Quantity struct {
	Key   string
	Label string
	Value float64
	Unit  string
}

// Quantities lists the result in a stable display order.
func (r Result) Quantities() []Quantity {
	return []Quantity{
		{Key: "temperature", Label: "Temperature", Value: r.TemperatureK, Unit: "K"},
		{Key: "entropy", Label: "Entropy", Value: r.EntropyJPerK, Unit: "J/K"},
		{Key: "luminosity", Label: "Luminosity", Value: r.LuminosityW, Unit: "W"},
		{Key: "peak_wavelength", Label: "Peak Wavelength", Value: r.PeakWavelengthM, Unit: "meters"},
		{Key: "lifetime", Label: "Lifetime", Value: r.LifetimeYears, Unit: "years"},
		{Key: "horizon_area", Label: "Horizon Area", Value: r.HorizonAreaM2, Unit: "m^2"},
	}
}

// Analyze computes the thermodynamic quantities of s.
func Analyze(s metric.Spacetime) Result {
	p := s.Params()
	c := s.Constants()

	tSch := SchwarzschildTemperatureK / p.MassSolar
	temperature := tSch
	if s.Kind().Rotating() {
		temperature = tSch * surfaceGravityRatio(s)
	}

	area := horizonArea(s)
	entropy := c.KB * c.C * c.C * c.C * area / (4 * c.G * c.HBar)
	luminosity := c.SigmaSB * area * math.Pow(temperature, 4)

	peak := math.Inf(1)
	lifetime := math.Inf(1)
	if temperature > 0 {
		peak = c.WienB / temperature
		ratio := tSch / temperature
		lifetime = SchwarzschildLifetimeS * p.MassSolar * p.MassSolar * p.MassSolar * ratio * ratio
	}

	return Result{
		TemperatureK:    temperature,
		EntropyJPerK:    entropy,
		LuminosityW:     luminosity,
		PeakWavelengthM: peak,
		LifetimeSeconds: lifetime,
		LifetimeYears:   lifetime / c.Year,
		HorizonAreaM2:   area,
	}
}

// surfaceGravityRatio returns κ/κ_sch with
//
//	κ     = (r+ − M) / (2π(r+² + a²))
//	κ_sch = 1 / (4M)
func surfaceGravityRatio(s metric.Spacetime) float64 {
	p := s.Params()
	rp := s.EventHorizon().Outer
	a := p.A()
	kappa := (rp - p.M) / (2 * math.Pi * (rp*rp + a*a))
	kappaSch := 1 / (4 * p.M)
	return kappa / kappaSch
}

// horizonArea returns 16πM² for Schwarzschild and 4π(r+² + a²) otherwise.
func horizonArea(s metric.Spacetime) float64 {
	p := s.Params()
	if s.Kind() == metric.KindSchwarzschild {
		return 16 * math.Pi * p.M * p.M
	}
	rp := s.EventHorizon().Outer
	a := p.A()
	return 4 * math.Pi * (rp*rp + a*a)
}
