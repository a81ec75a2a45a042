package pipeline

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/nao1215/blackholecalc/internal/model"
)

// Sweepable parameters.
const (
	ParameterSpin   = "spin"
	ParameterCharge = "charge"
)

var (
	// ErrUnknownParameter is returned for a sweep over an unsupported input.
	ErrUnknownParameter = errors.New("unknown sweep parameter")

	// ErrInvalidSteps is returned when a sweep has fewer than one point.
	ErrInvalidSteps = errors.New("sweep needs at least one step")
)

// SweepRequest describes a one-parameter sweep.
type SweepRequest struct {
	// Base is copied for every point; only the swept input changes.
	Base model.Request

	// Parameter is ParameterSpin or ParameterCharge.
	Parameter string

	// From and To bound the sweep, both inclusive.
	From, To float64

	// Steps is the number of points.
	Steps int
}

// Grid returns steps evenly spaced values from from to to inclusive.
// A single step yields just from.
func Grid(from, to float64, steps int) ([]float64, error) {
	switch {
	case steps < 1:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	case steps == 1:
		return []float64{from}, nil
	default:
		return floats.Span(make([]float64, steps), from, to), nil
	}
}

// Requests expands the sweep into one request per grid point.
func (s SweepRequest) Requests() ([]float64, []model.Request, error) {
	values, err := Grid(s.From, s.To, s.Steps)
	if err != nil {
		return nil, nil, err
	}

	reqs := make([]model.Request, len(values))
	for i, v := range values {
		req := s.Base
		switch s.Parameter {
		case ParameterSpin:
			req.Input.Spin = v
		case ParameterCharge:
			req.Input.Charge = v
		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownParameter, s.Parameter)
		}
		reqs[i] = req
	}
	return values, reqs, nil
}

// RunSweep evaluates every point of s with bp and collects the runs.
func RunSweep(ctx context.Context, bp *BatchProcessor, s SweepRequest) (*model.Sweep, error) {
	values, reqs, err := s.Requests()
	if err != nil {
		return nil, err
	}

	runs, err := bp.ProcessBatch(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("sweep interrupted: %w", err)
	}

	return &model.Sweep{
		Parameter: s.Parameter,
		MassSolar: s.Base.Input.MassSolar,
		Values:    values,
		Runs:      runs,
	}, nil
}
