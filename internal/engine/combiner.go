package engine

import (
	"math"
	"time"

	"github.com/veridoc/veridoc/internal/model"
)

// Combine fuses the per-signal scores into the final report.
//
// In heuristic-only mode (no external probability present) the suspicion is
// the weighted sum of the four heuristic signals. In hybrid mode the
// heuristic aggregate is blended with the external probability using the
// configured split. Authenticity is (1 - suspicion) * 100, clamped to
// [0,100], and the label bands are Verified [75,100], Suspicious [50,75),
// AI Generated [0,50) with boundary values owned by the higher band.
//
// Suspicious-band confidence uses the computed |authenticity-50|/50 form
// rather than a fixed constant, so confidence grows toward the verified
// boundary instead of flat-lining; see DESIGN.md for the rationale.
//
// Combine is a pure function of its inputs: identical inputs produce
// identical reports.
func Combine(scores model.AnalysisScores, weights model.FusionWeights,
	metadata model.ImageMetadata, analyzedAt time.Time,
) *model.AuthenticityReport {
	suspicion := weights.Metadata*scores.MetadataAnomaly +
		weights.Noise*scores.NoiseUniformity +
		weights.Edge*scores.EdgeConsistency +
		weights.Compression*scores.CompressionArtifact

	if scores.ExternalAIProbability != nil {
		suspicion = weights.Heuristic*suspicion + weights.External*(*scores.ExternalAIProbability)
	}

	authenticity := (1 - suspicion) * 100
	if authenticity < 0 {
		authenticity = 0
	} else if authenticity > 100 {
		authenticity = 100
	}

	label := model.LabelForScore(authenticity)

	var confidence float64
	switch label {
	case model.LabelVerified:
		confidence = min((authenticity-75)/25, 1)
	case model.LabelSuspicious:
		confidence = min(math.Abs(authenticity-50)/50, 1)
	case model.LabelAIGenerated:
		confidence = min((50-authenticity)/50, 1)
	}

	report := &model.AuthenticityReport{
		Score:      model.Round1(authenticity),
		Label:      label,
		Confidence: model.Round2(confidence),
		Breakdown: model.Breakdown{
			MetadataAnomaly:      model.Round1(scores.MetadataAnomaly * 100),
			NoiseUniformity:      model.Round1(scores.NoiseUniformity * 100),
			EdgeConsistency:      model.Round1(scores.EdgeConsistency * 100),
			CompressionArtifacts: model.Round1(scores.CompressionArtifact * 100),
		},
		Metadata:   metadata,
		AnalyzedAt: analyzedAt,
	}

	if scores.ExternalAIProbability != nil {
		p := model.Round1(*scores.ExternalAIProbability * 100)
		report.AIModelProbability = &p
	}

	return report
}
