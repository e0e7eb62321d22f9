package model

import (
	"errors"
	"fmt"
	"math"
)

// Signal name constants used in report breakdowns and logging.
// These strings are part of the API contract and must not change.
const (
	// SignalMetadataAnomaly scores absence or suspicious shape of embedded
	// image metadata.
	SignalMetadataAnomaly = "metadata_anomaly"

	// SignalNoiseUniformity scores how uniform the local pixel-intensity
	// variance is across the frame.
	SignalNoiseUniformity = "noise_uniformity"

	// SignalEdgeConsistency scores how uniform the gradient-magnitude
	// distribution is across the frame.
	SignalEdgeConsistency = "edge_consistency"

	// SignalCompressionArtifacts scores overall per-channel color dispersion.
	SignalCompressionArtifacts = "compression_artifacts"
)

// Score validation errors returned by AnalysisScores.Validate and
// FusionWeights.Validate.
var (
	// ErrScoreOutOfRange is returned when a sub-score falls outside [0,1].
	ErrScoreOutOfRange = errors.New("analysis score out of range: must be in [0,1]")

	// ErrWeightsNotNormalized is returned when a weight set does not sum to 1.
	ErrWeightsNotNormalized = errors.New("fusion weights must sum to 1.0")

	// ErrNegativeWeight is returned when any fusion weight is negative.
	ErrNegativeWeight = errors.New("fusion weights must be non-negative")
)

// AnalysisScores holds the raw per-signal suspicion scores produced by the
// engine's analyzers. Each score is in [0,1]; higher means more suspicious.
type AnalysisScores struct {
	// MetadataAnomaly is the metadata absence/shape score.
	MetadataAnomaly float64

	// NoiseUniformity is the local-variance uniformity score.
	NoiseUniformity float64

	// EdgeConsistency is the gradient-magnitude uniformity score.
	EdgeConsistency float64

	// CompressionArtifact is the color-dispersion score.
	CompressionArtifact float64

	// ExternalAIProbability is the third-party AI-generation probability,
	// when one was obtained. Nil means the external signal was not requested.
	ExternalAIProbability *float64
}

// Validate checks that every score lies in [0,1].
func (s AnalysisScores) Validate() error {
	for name, v := range map[string]float64{
		SignalMetadataAnomaly:      s.MetadataAnomaly,
		SignalNoiseUniformity:      s.NoiseUniformity,
		SignalEdgeConsistency:      s.EdgeConsistency,
		SignalCompressionArtifacts: s.CompressionArtifact,
	} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s=%v", ErrScoreOutOfRange, name, v)
		}
	}
	if p := s.ExternalAIProbability; p != nil && (*p < 0 || *p > 1 || math.IsNaN(*p)) {
		return fmt.Errorf("%w: external_ai_probability=%v", ErrScoreOutOfRange, *p)
	}
	return nil
}

// FusionWeights configures how the per-signal scores are fused into a single
// suspicion value. The four heuristic weights must sum to 1.0; in hybrid mode
// the heuristic/external split must also sum to 1.0.
//
// Design decision: weights are an explicit immutable value passed into the
// engine at construction rather than package-level variables. The original
// implementation kept them in a mutable global; injecting them keeps every
// analysis request a pure function of its inputs.
type FusionWeights struct {
	// Metadata is the weight of the metadata anomaly signal.
	Metadata float64

	// Noise is the weight of the noise uniformity signal.
	Noise float64

	// Edge is the weight of the edge consistency signal.
	Edge float64

	// Compression is the weight of the compression artifact signal.
	Compression float64

	// Heuristic is the share of the heuristic aggregate in hybrid mode.
	Heuristic float64

	// External is the share of the external AI probability in hybrid mode.
	External float64
}

// DefaultFusionWeights returns the reference weighting: 0.2/0.3/0.3/0.2 for
// the heuristic signals and a 0.4/0.6 heuristic/external split in hybrid mode.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{
		Metadata:    0.2,
		Noise:       0.3,
		Edge:        0.3,
		Compression: 0.2,
		Heuristic:   0.4,
		External:    0.6,
	}
}

// weightSumTolerance absorbs float accumulation error when checking that
// weights sum to 1.0.
const weightSumTolerance = 1e-9

// Validate checks that all weights are non-negative and that both the
// heuristic set and the hybrid split sum to 1.0.
func (w FusionWeights) Validate() error {
	for _, v := range []float64{w.Metadata, w.Noise, w.Edge, w.Compression, w.Heuristic, w.External} {
		if v < 0 {
			return ErrNegativeWeight
		}
	}
	if math.Abs(w.Metadata+w.Noise+w.Edge+w.Compression-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: heuristic weights sum to %v",
			ErrWeightsNotNormalized, w.Metadata+w.Noise+w.Edge+w.Compression)
	}
	if math.Abs(w.Heuristic+w.External-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: hybrid split sums to %v",
			ErrWeightsNotNormalized, w.Heuristic+w.External)
	}
	return nil
}
