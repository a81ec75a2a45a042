package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newTestRun() *model.Run {
	return model.NewRun(model.NewRequest(metric.Input{MassSolar: 10}), "test")
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))

		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})

	t.Run("NewDefault adds the default steps", func(t *testing.T) {
		t.Parallel()

		p := NewDefault(StepConfig{})
		want := []string{"classify", "build_model", "horizon", "isco", "ergosphere", "redshift", "effective_potential", "thermodynamics"}
		got := p.StepNames()
		if len(got) != len(want) {
			t.Fatalf("expected %d steps, got %v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("step %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})
}

// TestPipelineExecute tests step execution and error handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		for _, name := range []string{"first", "second", "third"} {
			p.AddStep(&mockStep{name: name, doFunc: func(_ context.Context, _ *model.Run) error {
				order = append(order, name)
				return nil
			}})
		}

		run := newTestRun()
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fmt.Sprint(order) != "[first second third]" {
			t.Errorf("unexpected order %v", order)
		}
		if len(run.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %v", run.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		last := &mockStep{name: "last"}
		p := New()
		p.AddSteps(
			&mockStep{name: "failing", doFunc: func(_ context.Context, _ *model.Run) error { return stepErr }},
			last,
		)

		run := newTestRun()
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if last.callCount != 0 {
			t.Error("expected later steps to be skipped")
		}
		if run.ErrorMessage != "boom" {
			t.Errorf("expected error recorded on run, got %q", run.ErrorMessage)
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		last := &mockStep{name: "last"}
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&mockStep{name: "failing", doFunc: func(_ context.Context, _ *model.Run) error { return errors.New("boom") }},
			last,
		)

		run := newTestRun()
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if last.callCount != 1 {
			t.Error("expected later steps to run")
		}
		if !run.Failed() {
			t.Error("expected run to be marked failed")
		}
	})

	t.Run("not implemented becomes a note", func(t *testing.T) {
		t.Parallel()

		last := &mockStep{name: "last"}
		p := New()
		p.AddSteps(
			&mockStep{name: "partial", doFunc: func(_ context.Context, _ *model.Run) error {
				return fmt.Errorf("potential: %w", metric.ErrNotImplemented)
			}},
			last,
		)

		run := newTestRun()
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if last.callCount != 1 {
			t.Error("expected execution to continue")
		}
		if run.Failed() {
			t.Error("not implemented must not fail the run")
		}
		if len(run.Notices) != 1 || run.Notices[0].Level != model.LevelNote || run.Notices[0].Step != "partial" {
			t.Errorf("unexpected notices %+v", run.Notices)
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		run := newTestRun()
		if err := p.Execute(ctx, run); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})
}
