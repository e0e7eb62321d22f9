package engine

import (
	"context"
	"testing"

	"github.com/veridoc/veridoc/internal/imaging"
)

// batchRaster builds a single-color raster for batch tests.
func batchRaster(size int, value uint8) *imaging.Raster {
	return flatRaster(size, size, value, value, value, "PNG", imaging.EXIFInfo{})
}

// TestBatchProcessor tests concurrent multi-image analysis.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("analyzes all rasters in order", func(t *testing.T) {
		t.Parallel()

		rasters := []*imaging.Raster{
			batchRaster(64, 0),
			batchRaster(64, 128),
			batchRaster(64, 255),
		}

		bp := NewBatchProcessor(New(), WithConcurrency(2))
		results, err := bp.ProcessBatch(context.Background(), rasters)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != len(rasters) {
			t.Fatalf("got %d results, want %d", len(results), len(rasters))
		}
		for i, result := range results {
			if result.Err != nil {
				t.Errorf("result %d failed: %v", i, result.Err)
				continue
			}
			if result.Report == nil {
				t.Errorf("result %d has no report", i)
				continue
			}
			if result.Report.Score < 0 || result.Report.Score > 100 {
				t.Errorf("result %d score = %v, want in [0,100]", i, result.Report.Score)
			}
		}
	})

	t.Run("identical inputs produce identical reports", func(t *testing.T) {
		t.Parallel()

		rasters := []*imaging.Raster{
			batchRaster(64, 100),
			batchRaster(64, 100),
		}

		bp := NewBatchProcessor(New())
		results, err := bp.ProcessBatch(context.Background(), rasters)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if results[0].Report.Score != results[1].Report.Score {
			t.Errorf("scores differ for identical inputs: %v vs %v",
				results[0].Report.Score, results[1].Report.Score)
		}
	})

	t.Run("empty batch returns no results", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(New())
		results, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("got %d results, want 0", len(results))
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rasters := []*imaging.Raster{
			batchRaster(64, 0),
			batchRaster(64, 1),
		}

		bp := NewBatchProcessor(New())
		_, err := bp.ProcessBatch(ctx, rasters)
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	})

	t.Run("rejects non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(New(), WithConcurrency(0))
		if bp.concurrency != 4 {
			t.Errorf("concurrency = %d, want default 4", bp.concurrency)
		}
	})
}
