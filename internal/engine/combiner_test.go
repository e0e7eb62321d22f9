package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

var combineTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// TestCombineHeuristicOnly verifies the reference fusion example:
// suspicion 0.86 maps to score 14.0, label AI Generated, confidence 0.72.
func TestCombineHeuristicOnly(t *testing.T) {
	t.Parallel()

	scores := model.AnalysisScores{
		MetadataAnomaly:     0.3,
		NoiseUniformity:     1.0,
		EdgeConsistency:     1.0,
		CompressionArtifact: 1.0,
	}

	report := Combine(scores, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)

	if report.Score != 14.0 {
		t.Errorf("Score = %v, want 14.0", report.Score)
	}
	if report.Label != model.LabelAIGenerated {
		t.Errorf("Label = %v, want AI Generated", report.Label)
	}
	if report.Confidence != 0.72 {
		t.Errorf("Confidence = %v, want 0.72", report.Confidence)
	}
	if report.AIModelProbability != nil {
		t.Error("heuristic-only fusion must not report an AI model probability")
	}
	if report.Breakdown.MetadataAnomaly != 30.0 {
		t.Errorf("Breakdown.MetadataAnomaly = %v, want 30.0", report.Breakdown.MetadataAnomaly)
	}
	if report.Breakdown.NoiseUniformity != 100.0 {
		t.Errorf("Breakdown.NoiseUniformity = %v, want 100.0", report.Breakdown.NoiseUniformity)
	}
	if !report.AnalyzedAt.Equal(combineTime) {
		t.Errorf("AnalyzedAt = %v, want %v", report.AnalyzedAt, combineTime)
	}
}

// TestCombineBoundaries verifies deterministic boundary ownership:
// the boundary value always belongs to the higher band.
func TestCombineBoundaries(t *testing.T) {
	t.Parallel()

	// Sub-score combinations are chosen so the weighted sums are exact in
	// binary floating point and land precisely on the band boundaries.
	tests := []struct {
		name           string
		scores         model.AnalysisScores
		wantLabel      model.Label
		wantConfidence float64
	}{
		{
			name: "authenticity 75 exactly is verified with zero confidence",
			// suspicion = 0.2*1.0 + 0.2*0.25 = 0.25
			scores: model.AnalysisScores{
				MetadataAnomaly:     1.0,
				CompressionArtifact: 0.25,
			},
			wantLabel:      model.LabelVerified,
			wantConfidence: 0.0,
		},
		{
			name: "authenticity 50 exactly is suspicious not ai generated",
			// suspicion = 0.2*1.0 + 0.3*1.0 = 0.5
			scores: model.AnalysisScores{
				MetadataAnomaly: 1.0,
				NoiseUniformity: 1.0,
			},
			wantLabel:      model.LabelSuspicious,
			wantConfidence: 0.0,
		},
		{
			name:           "authenticity 100 is verified with full confidence",
			scores:         model.AnalysisScores{},
			wantLabel:      model.LabelVerified,
			wantConfidence: 1.0,
		},
		{
			name: "authenticity 0 is ai generated with full confidence",
			scores: model.AnalysisScores{
				MetadataAnomaly:     1.0,
				NoiseUniformity:     1.0,
				EdgeConsistency:     1.0,
				CompressionArtifact: 1.0,
			},
			wantLabel:      model.LabelAIGenerated,
			wantConfidence: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := Combine(tt.scores, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)
			if report.Label != tt.wantLabel {
				t.Errorf("Label = %v, want %v", report.Label, tt.wantLabel)
			}
			if report.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", report.Confidence, tt.wantConfidence)
			}
		})
	}
}

// TestCombineSuspiciousConfidence verifies the computed |score-50|/50
// confidence policy in the middle band.
func TestCombineSuspiciousConfidence(t *testing.T) {
	t.Parallel()

	// Uniform sub-scores of 0.4 give authenticity 60.0.
	scores := model.AnalysisScores{
		MetadataAnomaly:     0.4,
		NoiseUniformity:     0.4,
		EdgeConsistency:     0.4,
		CompressionArtifact: 0.4,
	}

	report := Combine(scores, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)
	if report.Label != model.LabelSuspicious {
		t.Fatalf("Label = %v, want Suspicious", report.Label)
	}
	// |60-50|/50 = 0.2
	if report.Confidence != 0.2 {
		t.Errorf("Confidence = %v, want 0.2", report.Confidence)
	}
}

// TestCombineHybrid verifies the 0.4/0.6 heuristic/external blend.
func TestCombineHybrid(t *testing.T) {
	t.Parallel()

	external := 0.5
	scores := model.AnalysisScores{
		MetadataAnomaly:       0.3,
		NoiseUniformity:       1.0,
		EdgeConsistency:       1.0,
		CompressionArtifact:   1.0,
		ExternalAIProbability: &external,
	}

	report := Combine(scores, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)

	// combined = 0.4*0.86 + 0.6*0.5 = 0.644 -> authenticity 35.6
	if report.Score != 35.6 {
		t.Errorf("Score = %v, want 35.6", report.Score)
	}
	if report.Label != model.LabelAIGenerated {
		t.Errorf("Label = %v, want AI Generated", report.Label)
	}
	if report.AIModelProbability == nil || *report.AIModelProbability != 50.0 {
		t.Errorf("AIModelProbability = %v, want 50.0", report.AIModelProbability)
	}
}

// TestCombineProviderFailureEquivalence verifies that hybrid fusion with the
// neutral fallback probability is indistinguishable from an explicit 0.5.
func TestCombineProviderFailureEquivalence(t *testing.T) {
	t.Parallel()

	base := model.AnalysisScores{
		MetadataAnomaly:     0.1,
		NoiseUniformity:     0.6,
		EdgeConsistency:     0.4,
		CompressionArtifact: 0.2,
	}

	fallback := 0.5
	withFallback := base
	withFallback.ExternalAIProbability = &fallback

	explicit := 0.5
	withExplicit := base
	withExplicit.ExternalAIProbability = &explicit

	a := Combine(withFallback, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)
	b := Combine(withExplicit, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("fallback report %+v differs from explicit report %+v", a, b)
	}
}

// TestCombineIdempotent verifies that identical inputs produce identical
// reports: the combiner holds no hidden state and uses no randomness.
func TestCombineIdempotent(t *testing.T) {
	t.Parallel()

	scores := model.AnalysisScores{
		MetadataAnomaly:     0.4,
		NoiseUniformity:     0.7,
		EdgeConsistency:     0.2,
		CompressionArtifact: 0.9,
	}
	meta := model.ImageMetadata{Format: "PNG", Mode: "RGB", Size: [2]int{64, 64}, Filename: "x.png"}

	first := Combine(scores, model.DefaultFusionWeights(), meta, combineTime)
	second := Combine(scores, model.DefaultFusionWeights(), meta, combineTime)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated combination differs: %+v vs %+v", first, second)
	}
}

// TestCombineScoreInRange sweeps sub-score combinations and checks the
// report invariants hold everywhere.
func TestCombineScoreInRange(t *testing.T) {
	t.Parallel()

	steps := []float64{0, 0.25, 0.5, 0.75, 1}
	for _, m := range steps {
		for _, n := range steps {
			for _, e := range steps {
				for _, c := range steps {
					scores := model.AnalysisScores{
						MetadataAnomaly:     m,
						NoiseUniformity:     n,
						EdgeConsistency:     e,
						CompressionArtifact: c,
					}
					report := Combine(scores, model.DefaultFusionWeights(), model.ImageMetadata{}, combineTime)
					if report.Score < 0 || report.Score > 100 {
						t.Fatalf("Score %v out of range for %+v", report.Score, scores)
					}
					if report.Confidence < 0 || report.Confidence > 1 {
						t.Fatalf("Confidence %v out of range for %+v", report.Confidence, scores)
					}
				}
			}
		}
	}
}
