package classify

import (
	"github.com/nao1215/blackholecalc/internal/metric"
)

// Status values reported in Record.Status.
const (
	StatusStable   = "Stable Event Horizon"
	StatusUnstable = "UNSTABLE (Naked Singularity)"
)

// Record is the outcome of a classification.
type Record struct {
	// Type is the solution name, e.g. "Kerr".
	Type string `json:"type"`

	// Description is a short qualitative summary, e.g. "Rotating, Neutral".
	Description string `json:"description"`

	// Status is StatusStable or StatusUnstable.
	Status string `json:"status"`

	// IsPhysical is false when no horizon hides the singularity.
	IsPhysical bool `json:"is_physical"`
}

var descriptions = map[metric.Kind]string{
	metric.KindSchwarzschild:     "Static, Neutral",
	metric.KindKerr:              "Rotating, Neutral",
	metric.KindReissnerNordstrom: "Static, Charged",
	metric.KindKerrNewman:        "Rotating, Charged",
}

// Classify maps (mass, spin, charge) to a Record. The mass does not affect
// the outcome; it is accepted so callers can pass a full parameter set.
func Classify(_, spin, charge float64) Record {
	kind := metric.KindFor(metric.Input{Spin: spin, Charge: charge})

	physical := spin*spin+charge*charge <= 1+metric.BoundTolerance
	status := StatusStable
	if !physical {
		status = StatusUnstable
	}

	return Record{
		Type:        kind.String(),
		Description: descriptions[kind],
		Status:      status,
		IsPhysical:  physical,
	}
}
