package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
)

func TestGrid(t *testing.T) {
	t.Parallel()

	t.Run("inclusive bounds", func(t *testing.T) {
		t.Parallel()
		g, err := Grid(0, 0.99, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(g) != 50 || g[0] != 0 || math.Abs(g[49]-0.99) > 1e-12 {
			t.Errorf("unexpected grid len=%d first=%g last=%g", len(g), g[0], g[len(g)-1])
		}
	})

	t.Run("single step", func(t *testing.T) {
		t.Parallel()
		g, err := Grid(0.3, 0.9, 1)
		if err != nil || len(g) != 1 || g[0] != 0.3 {
			t.Errorf("unexpected grid %v (%v)", g, err)
		}
	})

	t.Run("zero steps", func(t *testing.T) {
		t.Parallel()
		if _, err := Grid(0, 1, 0); !errors.Is(err, ErrInvalidSteps) {
			t.Errorf("expected ErrInvalidSteps, got %v", err)
		}
	})
}

func TestRunSweep(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func() *Pipeline { return NewDefault(StepConfig{}) }, WithConcurrency(4))

	t.Run("horizon shrinks with spin", func(t *testing.T) {
		t.Parallel()

		s, err := RunSweep(context.Background(), bp, SweepRequest{
			Base:      model.NewRequest(metric.Input{MassSolar: 10}),
			Parameter: ParameterSpin,
			From:      0,
			To:        0.99,
			Steps:     10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Runs) != 10 || s.Failed() != 0 {
			t.Fatalf("expected 10 successful runs, got %d (%d failed)", len(s.Runs), s.Failed())
		}
		prev := math.Inf(1)
		for i, run := range s.Runs {
			r, ok := run.Outputs.Value(model.OutputHorizonRadius)
			if !ok {
				t.Fatalf("run %d has no horizon", i)
			}
			if r >= prev {
				t.Errorf("horizon did not shrink at spin %g", s.Values[i])
			}
			prev = r
		}
		if s.Runs[0].Provenance.ModelClass != "Schwarzschild" || s.Runs[1].Provenance.ModelClass != "Kerr" {
			t.Errorf("unexpected model classes %q %q", s.Runs[0].Provenance.ModelClass, s.Runs[1].Provenance.ModelClass)
		}
	})

	t.Run("charge sweep", func(t *testing.T) {
		t.Parallel()

		s, err := RunSweep(context.Background(), bp, SweepRequest{
			Base:      model.NewRequest(metric.Input{MassSolar: 10}),
			Parameter: ParameterCharge,
			From:      0.1,
			To:        0.9,
			Steps:     3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, run := range s.Runs {
			if run.Provenance.ModelClass != metric.KindReissnerNordstrom.String() {
				t.Errorf("unexpected model class %q", run.Provenance.ModelClass)
			}
		}
	})

	t.Run("unknown parameter", func(t *testing.T) {
		t.Parallel()

		_, err := RunSweep(context.Background(), bp, SweepRequest{Parameter: "mass", Steps: 2})
		if !errors.Is(err, ErrUnknownParameter) {
			t.Errorf("expected ErrUnknownParameter, got %v", err)
		}
	})
}
