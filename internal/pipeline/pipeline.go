package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
)

// Step computes one group of quantities and records them on the run.
// Each step sees what earlier steps recorded, most importantly the
// spacetime built by BuildStep.
//
// Design decision: steps are values rather than functions so they can hold
// their constant table and logger, and so Name() can label notices and
// the PerformedSteps provenance list.
type Step interface {
	// Do evaluates the step. An error wrapping metric.ErrNotImplemented
	// marks the step's quantities as missing; any other error fails the run.
	Do(ctx context.Context, run *model.Run) error

	// Name identifies the step in logs, notices and provenance.
	Name() string
}

// Pipeline evaluates a run by executing its steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps evaluating after a failed step.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps executing steps after one fails. The first
// failure is still recorded on the run.
//
// The default is to stop: once BuildStep rejects the parameters there is
// no spacetime for the remaining steps, and they would all fail with
// ErrNoModel.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// NewDefault creates a pipeline with DefaultSteps already added.
func NewDefault(cfg StepConfig, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(DefaultSteps(cfg)...)
	return p
}

// AddStep appends step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute evaluates run.
//
// A step reporting metric.ErrNotImplemented adds a NOTE to the run and
// execution continues regardless of continueOnError. Any other error is
// recorded on the run and, unless continueOnError is set, returned.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("evaluation cancelled", "step", step.Name(), "reason", err)
			run.SetError(err)
			return err
		}

		p.logger.Debug("evaluating", "step", step.Name(), "run", run.ID)

		err := step.Do(ctx, run)
		switch {
		case err == nil:
		case errors.Is(err, metric.ErrNotImplemented):
			p.logger.Warn("quantity not computed",
				"step", step.Name(),
				"run", run.ID,
				"reason", err,
			)
			run.AddNotice(model.LevelNote, step.Name(), err.Error())
		default:
			p.logger.Error("step failed",
				"step", step.Name(),
				"run", run.ID,
				"error", err,
			)
			run.SetError(err)
			if !p.continueOnError {
				return err
			}
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
