package report

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/blackholecalc/internal/model"
)

// printer groups digits in large masses, e.g. 4,300,000 M_sun.
var printer = message.NewPrinter(language.English)

// labels maps quantity keys to display names.
var labels = map[string]string{
	model.InputMassSolar:       "Mass",
	model.InputSpin:            "Spin a*",
	model.InputCharge:          "Charge Q*",
	model.InputTheta:           "Probe angle θ",
	model.InputProbeRadius:     "Probe radius",
	model.InputAngularMomentum: "Angular momentum L",

	model.OutputGeometricMass:      "Geometric mass M",
	model.OutputHorizonRadius:      "Event horizon r+",
	model.OutputInnerHorizonRadius: "Inner horizon r-",
	model.OutputISCORadius:         "ISCO (prograde)",
	model.OutputISCORetrograde:     "ISCO (retrograde)",
	model.OutputErgosphereEquator:  "Ergosphere (equator)",
	model.OutputErgospherePole:     "Ergosphere (pole)",
	model.OutputRedshift:           "Redshift z at probe",
	model.OutputEffectivePotential: "Effective potential at probe",
	model.OutputTemperature:        "Hawking temperature",
	model.OutputEntropy:            "Entropy",
	model.OutputLuminosity:         "Luminosity",
	model.OutputPeakWavelength:     "Peak wavelength",
	model.OutputLifetime:           "Evaporation lifetime",
	model.OutputHorizonArea:        "Horizon area",
}

// Label returns the display name of a quantity key.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

// FormatQuantity renders a recorded quantity for display.
// Radii are followed by their value in units of M when geometricMass is
// positive.
func FormatQuantity(q model.Quantity, geometricMass float64) string {
	if !q.Computed() {
		return "not implemented"
	}
	v := q.Value.Float64()
	if !q.Value.IsFinite() {
		return q.Value.String() + unitSuffix(q.Unit)
	}

	switch q.Unit {
	case model.UnitMeters:
		s := FormatLength(v)
		if geometricMass > 0 {
			s += " (" + strconv.FormatFloat(v/geometricMass, 'f', 4, 64) + " M)"
		}
		return s
	case model.UnitSolarMass:
		return FormatSolarMass(v)
	case model.UnitDimensionless:
		return strconv.FormatFloat(v, 'g', 6, 64)
	default:
		return strconv.FormatFloat(v, 'g', 6, 64) + unitSuffix(q.Unit)
	}
}

// FormatLength renders meters with an SI prefix, e.g. "29.53 km".
func FormatLength(meters float64) string {
	if math.IsInf(meters, 0) || math.IsNaN(meters) {
		return model.Number(meters).String() + " m"
	}
	if meters == 0 {
		return "0 m"
	}
	return humanize.SIWithDigits(meters, 2, "m")
}

// FormatSolarMass renders a mass in solar masses with digit grouping.
func FormatSolarMass(mass float64) string {
	if mass != 0 && (math.Abs(mass) < 0.01 || math.Abs(mass) >= 1e15) {
		return strconv.FormatFloat(mass, 'e', 3, 64) + " M_sun"
	}
	return printer.Sprintf("%.2f M_sun", mass)
}

// ratio returns key's value in units of M, or NaN when unavailable.
func ratio(run *model.Run, key string) float64 {
	m, ok := run.Outputs.Value(model.OutputGeometricMass)
	if !ok || m == 0 {
		return math.NaN()
	}
	v, ok := run.Outputs.Value(key)
	if !ok {
		return math.NaN()
	}
	return v / m
}

// cell renders a sweep table value.
func cell(v float64, format byte, prec int) string {
	if math.IsNaN(v) {
		return "-"
	}
	if math.IsInf(v, 0) {
		return model.Number(v).String()
	}
	return strconv.FormatFloat(v, format, prec, 64)
}

func unitSuffix(unit string) string {
	if unit == "" || unit == model.UnitDimensionless {
		return ""
	}
	return " " + unit
}

// sweepRow is one line of a sweep table.
type sweepRow struct {
	value       string
	class       string
	horizon     string
	isco        string
	temperature string
	status      string
}

func sweepRows(s *model.Sweep) []sweepRow {
	rows := make([]sweepRow, 0, len(s.Runs))
	for i, run := range s.Runs {
		if run == nil {
			continue
		}
		row := sweepRow{
			value:       strconv.FormatFloat(s.Values[i], 'f', 4, 64),
			class:       modelClass(run),
			horizon:     cell(ratio(run, model.OutputHorizonRadius), 'f', 4),
			isco:        cell(ratio(run, model.OutputISCORadius), 'f', 4),
			temperature: "-",
			status:      "ok",
		}
		if t, ok := run.Outputs.Value(model.OutputTemperature); ok {
			row.temperature = cell(t, 'e', 3)
		}
		if run.Failed() {
			row.status = run.ErrorMessage
		} else if lvl := run.HighestLevel(); lvl > model.LevelInfo {
			row.status = lvl.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// modelClass names the solution a run evaluated, falling back to the
// classifier verdict when the model could not be built.
func modelClass(run *model.Run) string {
	if run.Spacetime != nil || run.Classification == nil {
		return run.Provenance.ModelClass
	}
	return run.Classification.Type
}

// geometricMass returns the run's geometric mass in meters, or 0.
func geometricMass(run *model.Run) float64 {
	m, ok := run.Outputs.Value(model.OutputGeometricMass)
	if !ok {
		return 0
	}
	return m
}
