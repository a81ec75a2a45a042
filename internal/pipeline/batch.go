package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/blackholecalc/internal/model"
)

// defaultConcurrency is the number of runs evaluated at once.
const defaultConcurrency = 10

// BatchProcessor evaluates many independent runs concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-run execution
// 2. Every run is independent, so no coordination beyond collecting results is needed
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each run.
	// We use a factory to ensure each run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// runFactory creates the run record for a request.
	runFactory func(model.Request) *model.Run

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed runs.
	// Access is synchronized via mutex.
	results []*model.Run
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is 10 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRunFactory sets how run records are created for each request.
// The default is model.NewRun with an empty description.
func WithRunFactory(f func(model.Request) *model.Run) BatchOption {
	return func(b *BatchProcessor) {
		if f != nil {
			b.runFactory = f
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each run to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// runs.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		runFactory: func(req model.Request) *model.Run {
			return model.NewRun(req, "")
		},
		concurrency: defaultConcurrency,
		results:     make([]*model.Run, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch evaluates the requests concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
//
// Results are returned in request order. A run whose pipeline failed is
// still returned with its error recorded; the error return only reports
// cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, reqs []model.Request) ([]*model.Run, error) {
	bp.logger.Info("starting batch processing",
		"total_runs", len(reqs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.mu.Lock()
	bp.results = make([]*model.Run, len(reqs))
	bp.mu.Unlock()

	err := bp.ProcessBatchWithCallback(ctx, reqs, func(run *model.Run, index int) {
		bp.mu.Lock()
		bp.results[index] = run
		bp.mu.Unlock()
	})

	bp.logger.Info("batch processing complete",
		"total_runs", len(reqs),
		"elapsed", time.Since(startTime),
	)

	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.results, err
}

// ProcessBatchWithCallback evaluates the requests and calls callback for
// each completed run. This is useful for streaming results.
//
// The callback receives the run and the index of its request. It is called
// from the goroutine that completed the run, so it should be thread-safe if
// it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	reqs []model.Request,
	callback func(run *model.Run, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			run := bp.runFactory(req)
			if err := bp.pipelineFactory().Execute(ctx, run); err != nil {
				bp.logger.Warn("run failed",
					"run", run.ID,
					"index", i,
					"error", err,
				)
			}

			callback(run, i)
			return nil
		})
	}

	return g.Wait()
}
