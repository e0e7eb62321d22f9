package engine

import (
	"context"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// stubProvider returns a fixed probability, optionally after a delay.
type stubProvider struct {
	probability float64
	delay       time.Duration
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Probability(ctx context.Context, _ *imaging.Raster) float64 {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return 0.5
		}
	}
	return p.probability
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestEngineAnalyzeHeuristicOnly tests a full analysis without an external
// provider.
func TestEngineAnalyzeHeuristicOnly(t *testing.T) {
	t.Parallel()

	clock := func() time.Time { return combineTime }
	eng := New(WithLogger(discardLogger()), WithClock(clock))

	// Flat 64x64 PNG without EXIF: metadata=0.4, noise=1.0, edge=0.5
	// (neutral), compression=1.0.
	raster := flatRaster(64, 64, 128, 128, 128, "PNG", imaging.EXIFInfo{})

	report, err := eng.Analyze(context.Background(), raster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// suspicion = 0.2*0.4 + 0.3*1.0 + 0.3*0.5 + 0.2*1.0 = 0.73
	if report.Score != 27.0 {
		t.Errorf("Score = %v, want 27.0", report.Score)
	}
	if report.Label != model.LabelAIGenerated {
		t.Errorf("Label = %v, want AI Generated", report.Label)
	}
	if report.Breakdown.NoiseUniformity != 100.0 {
		t.Errorf("Breakdown.NoiseUniformity = %v, want 100.0", report.Breakdown.NoiseUniformity)
	}
	if report.Breakdown.EdgeConsistency != 50.0 {
		t.Errorf("Breakdown.EdgeConsistency = %v, want 50.0", report.Breakdown.EdgeConsistency)
	}
	if report.AIModelProbability != nil {
		t.Error("expected no AI model probability without a provider")
	}
	if report.Metadata.Size != [2]int{64, 64} {
		t.Errorf("Metadata.Size = %v, want [64 64]", report.Metadata.Size)
	}
}

// TestEngineAnalyzeHybrid tests that a configured provider switches the
// engine into hybrid fusion.
func TestEngineAnalyzeHybrid(t *testing.T) {
	t.Parallel()

	eng := New(
		WithLogger(discardLogger()),
		WithClock(func() time.Time { return combineTime }),
		WithProvider(&stubProvider{probability: 0.9}),
	)

	raster := flatRaster(64, 64, 128, 128, 128, "PNG", imaging.EXIFInfo{})

	report, err := eng.Analyze(context.Background(), raster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.AIModelProbability == nil {
		t.Fatal("expected AI model probability in hybrid mode")
	}
	if *report.AIModelProbability != 90.0 {
		t.Errorf("AIModelProbability = %v, want 90.0", *report.AIModelProbability)
	}

	// combined = 0.4*0.73 + 0.6*0.9 = 0.832 -> authenticity 16.8
	if report.Score != 16.8 {
		t.Errorf("Score = %v, want 16.8", report.Score)
	}
}

// TestEngineAnalyzeDeterministic tests that repeated analysis of the same
// raster with a fixed clock yields identical reports.
func TestEngineAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	eng := New(WithLogger(discardLogger()), WithClock(func() time.Time { return combineTime }))
	raster := texturedRaster(64, 48, "JPEG", imaging.EXIFInfo{Present: true, FieldCount: 7})

	first, err := eng.Analyze(context.Background(), raster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eng.Analyze(context.Background(), raster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis differs:\n%+v\n%+v", first, second)
	}
}

// TestEngineAnalyzeCancelled tests that a cancelled context aborts analysis.
func TestEngineAnalyzeCancelled(t *testing.T) {
	t.Parallel()

	eng := New(WithLogger(discardLogger()))
	raster := flatRaster(8, 8, 0, 0, 0, "PNG", imaging.EXIFInfo{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := eng.Analyze(ctx, raster); err == nil {
		t.Error("expected error for cancelled context")
	}
}

// TestEngineInvalidWeightsPanics tests that a misconfigured weight set is
// rejected at construction.
func TestEngineInvalidWeightsPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid weights")
		}
	}()

	w := model.DefaultFusionWeights()
	w.Metadata = 0.9
	New(WithWeights(w), WithLogger(discardLogger()))
}

// TestEngineSubScoresInRange is the range property: every sub-score and the
// final score stay in bounds across a variety of inputs.
func TestEngineSubScoresInRange(t *testing.T) {
	t.Parallel()

	eng := New(WithLogger(discardLogger()))

	rasters := []*imaging.Raster{
		flatRaster(64, 64, 0, 0, 0, "PNG", imaging.EXIFInfo{}),
		flatRaster(64, 64, 255, 255, 255, "JPEG", imaging.EXIFInfo{Present: true, FieldCount: 2}),
		texturedRaster(64, 64, "WEBP", imaging.EXIFInfo{}),
		texturedRaster(8, 8, "PNG", imaging.EXIFInfo{}),
		texturedRaster(9, 17, "JPEG", imaging.EXIFInfo{}),
		flatRaster(1, 1, 42, 42, 42, "PNG", imaging.EXIFInfo{}),
	}

	for _, raster := range rasters {
		report, err := eng.Analyze(context.Background(), raster)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Score < 0 || report.Score > 100 {
			t.Errorf("Score %v out of range", report.Score)
		}
		if report.Confidence < 0 || report.Confidence > 1 {
			t.Errorf("Confidence %v out of range", report.Confidence)
		}
		for _, v := range []float64{
			report.Breakdown.MetadataAnomaly,
			report.Breakdown.NoiseUniformity,
			report.Breakdown.EdgeConsistency,
			report.Breakdown.CompressionArtifacts,
		} {
			if v < 0 || v > 100 {
				t.Errorf("breakdown value %v out of range", v)
			}
		}
	}
}
