package history

import (
	"context"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

func testReport(filename string, score float64, analyzedAt time.Time) *model.AuthenticityReport {
	return &model.AuthenticityReport{
		Score:      score,
		Label:      model.LabelForScore(score),
		Confidence: 0.4,
		Breakdown: model.Breakdown{
			MetadataAnomaly:      30.0,
			NoiseUniformity:      80.0,
			EdgeConsistency:      50.0,
			CompressionArtifacts: 60.0,
		},
		Metadata: model.ImageMetadata{
			Format:   "PNG",
			Mode:     "RGB",
			Size:     [2]int{640, 480},
			Filename: filename,
		},
		AnalyzedAt: analyzedAt,
	}
}

// TestStoreSaveAndRecent tests the round trip through the database.
func TestStoreSaveAndRecent(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.png", "b.jpg", "c.pdf"} {
		report := testReport(name, float64(40+i*20), base.Add(time.Duration(i)*time.Minute))
		if _, err := store.Save(ctx, report); err != nil {
			t.Fatalf("failed to save %s: %v", name, err)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first.
	if entries[0].Report.Metadata.Filename != "c.pdf" {
		t.Errorf("expected newest entry first, got %q", entries[0].Report.Metadata.Filename)
	}

	// Full report survives the round trip.
	got := entries[2].Report
	if got.Score != 40.0 {
		t.Errorf("Score = %v, want 40.0", got.Score)
	}
	if got.Label != model.LabelAIGenerated {
		t.Errorf("Label = %v, want AI Generated", got.Label)
	}
	if got.Breakdown.NoiseUniformity != 80.0 {
		t.Errorf("Breakdown.NoiseUniformity = %v, want 80.0", got.Breakdown.NoiseUniformity)
	}
	if got.Metadata.Size != [2]int{640, 480} {
		t.Errorf("Metadata.Size = %v", got.Metadata.Size)
	}
}

// TestStoreRecentLimit tests the result cap.
func TestStoreRecentLimit(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		report := testReport("x.png", 75, time.Now().UTC())
		if _, err := store.Save(ctx, report); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count reports: %v", err)
	}
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}

// TestStoreReopen tests that reports persist across connections.
func TestStoreReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := store.Save(ctx, testReport("keep.png", 88, time.Now().UTC())); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list reports: %v", err)
	}
	if len(entries) != 1 || entries[0].Report.Metadata.Filename != "keep.png" {
		t.Errorf("persisted report missing after reopen: %+v", entries)
	}
}
