package model

import (
	"encoding/hex"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/nao1215/blackholecalc/internal/classify"
	"github.com/nao1215/blackholecalc/internal/metric"
)

const (
	// DefaultProbeRadius is the redshift probe radius in units of M.
	DefaultProbeRadius = 10.0

	// DefaultAngularMomentum is the effective-potential angular momentum
	// in units of M.
	DefaultAngularMomentum = 4.0

	// idLength is the number of UUID characters kept as the run ID.
	idLength = 8
)

// Request is everything needed to evaluate one black hole.
type Request struct {
	// Input selects the variant and its parameters.
	Input metric.Input `json:"input"`

	// Theta is the polar angle of the redshift probe in radians.
	Theta float64 `json:"theta"`

	// ProbeRadius is the redshift probe radius in units of M.
	ProbeRadius float64 `json:"probe_radius"`

	// AngularMomentum is the test-particle angular momentum in units of M.
	AngularMomentum float64 `json:"angular_momentum"`
}

// NewRequest returns a request for in with the default probe settings.
func NewRequest(in metric.Input) Request {
	return Request{
		Input:           in,
		Theta:           metric.Equator,
		ProbeRadius:     DefaultProbeRadius,
		AngularMomentum: DefaultAngularMomentum,
	}
}

// Fingerprint returns a hex blake2b-256 digest of the request parameters.
// Two requests with identical parameters share a fingerprint; the display
// name is not part of it.
func (r Request) Fingerprint() string {
	parts := []float64{
		r.Input.MassSolar,
		r.Input.Spin,
		r.Input.Charge,
		r.Theta,
		r.ProbeRadius,
		r.AngularMomentum,
	}
	var b strings.Builder
	for i, v := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Provenance records the environment that produced a run.
type Provenance struct {
	LibraryVersion string `json:"library_version"`
	ModelClass     string `json:"model_class"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
}

// NewProvenance captures the current Go runtime and platform.
func NewProvenance(version string) Provenance {
	return Provenance{
		LibraryVersion: version,
		ModelClass:     "Unknown",
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Run is one evaluation of a black hole.
//
// Design decision: Inputs, outputs and provenance live together in one
// record so a saved run is reproducible on its own. The evaluated model is
// kept for the steps that need it but excluded from JSON; everything a
// reader needs is copied into Outputs.
type Run struct {
	// ID is the first eight characters of a random UUID.
	ID string `json:"id"`

	// Name is the run directory name, "run_<id>" unless set explicitly.
	Name string `json:"name"`

	// Timestamp is when the run was created, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Description is free text supplied by the user.
	Description string `json:"description"`

	// Request holds the parameters the run was evaluated with.
	Request Request `json:"request"`

	// Provenance records versions and platform.
	Provenance Provenance `json:"provenance"`

	// Inputs and Outputs are the recorded quantities with units.
	Inputs  Quantities `json:"inputs"`
	Outputs Quantities `json:"outputs"`

	// Assumptions lists modeling assumptions in effect for the outputs.
	Assumptions []string `json:"assumptions"`

	// Classification is the classifier verdict for the input parameters.
	Classification *classify.Record `json:"classification,omitempty"`

	// TypeInfo is the qualitative description of the evaluated model.
	TypeInfo *metric.TypeInfo `json:"type_info,omitempty"`

	// Notices collects warnings raised during evaluation.
	Notices []Notice `json:"notices,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Spacetime is the evaluated model. Nil until the build step runs.
	Spacetime metric.Spacetime `json:"-"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewRun creates a run for req with a fresh ID and timestamp.
func NewRun(req Request, description string) *Run {
	id := uuid.NewString()[:idLength]
	return &Run{
		ID:          id,
		Name:        "run_" + id,
		Timestamp:   time.Now().UTC(),
		Description: description,
		Request:     req,
		Provenance:  NewProvenance("dev"),
		Assumptions: make([]string, 0),
	}
}

// Fingerprint returns the fingerprint of the run's request.
func (r *Run) Fingerprint() string {
	return r.Request.Fingerprint()
}

// AddAssumption records a modeling assumption once.
func (r *Run) AddAssumption(text string) {
	for _, a := range r.Assumptions {
		if a == text {
			return
		}
	}
	r.Assumptions = append(r.Assumptions, text)
}

// AddNotice records a notice, skipping exact duplicates.
func (r *Run) AddNotice(level Level, step, message string) {
	n := Notice{Level: level, Step: step, Message: message}
	for _, existing := range r.Notices {
		if existing == n {
			return
		}
	}
	r.Notices = append(r.Notices, n)
}

// HighestLevel returns the most serious notice level, or LevelInfo when
// there are none.
func (r *Run) HighestLevel() Level {
	highest := LevelInfo
	for _, n := range r.Notices {
		if n.Level > highest {
			highest = n.Level
		}
	}
	return highest
}

// SetError records err as the reason the run stopped.
func (r *Run) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Failed reports whether the run stopped with an error.
func (r *Run) Failed() bool {
	return r.Error != nil || r.ErrorMessage != ""
}
