package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// BatchResult holds the outcome of one analysis within a batch.
// Exactly one of Report and Err is set.
type BatchResult struct {
	// Filename identifies the input raster.
	Filename string

	// Report is the analysis result, nil if the analysis failed.
	Report *model.AuthenticityReport

	// Err records why the analysis failed, nil on success.
	Err error
}

// BatchProcessor analyzes multiple rasters concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Engine because:
// 1. It keeps the Engine focused on single-image analysis
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// engine performs the per-raster analysis. The engine is stateless
	// across requests, so one instance is shared by all workers.
	engine *Engine

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed analyses in input order.
	// Access is synchronized via mutex.
	results []BatchResult
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

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor backed by the given engine.
func NewBatchProcessor(engine *Engine, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		engine:      engine,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple rasters concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each raster gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Results are returned in input order, with per-raster failures recorded
// in the result rather than aborting the batch. The error return
// indicates cancellation only.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, rasters []*imaging.Raster) ([]BatchResult, error) {
	bp.logger.Info("starting batch analysis",
		"total", len(rasters),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]BatchResult, len(rasters))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, raster := range rasters {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := bp.engine.Analyze(ctx, raster)

			// Store result regardless of error
			bp.mu.Lock()
			bp.results[i] = BatchResult{
				Filename: raster.Filename(),
				Report:   report,
				Err:      err,
			}
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("analysis failed",
					"filename", raster.Filename(),
					"error", err,
				)
				// Don't return the error to errgroup - other analyses
				// should continue. The failure is recorded in the result.
				return nil
			}

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total", len(rasters),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}
