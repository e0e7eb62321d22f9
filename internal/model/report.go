package model

import (
	"math"
	"time"
)

// ImageMetadata describes the decoded image as seen by the engine.
// It is included verbatim in the report for display purposes.
type ImageMetadata struct {
	// Format is the source encoding of the image (e.g. "JPEG", "PNG",
	// "WEBP", "PDF").
	Format string `json:"format"`

	// Mode is the color mode of the decoded raster (e.g. "RGB", "L").
	Mode string `json:"mode"`

	// Size is the decoded dimensions as [width, height].
	Size [2]int `json:"size"`

	// Filename is the original upload filename, used for display only.
	Filename string `json:"filename"`

	// HasEXIF reports whether any embedded EXIF metadata was found.
	HasEXIF bool `json:"has_exif"`

	// EXIFFields is the number of EXIF fields found, 0 when HasEXIF is false.
	EXIFFields int `json:"exif_fields"`
}

// Breakdown holds the per-signal scores scaled to [0,100] for display.
// Field order matches the signal constants in scores.go.
type Breakdown struct {
	MetadataAnomaly      float64 `json:"metadata_anomaly"`
	NoiseUniformity      float64 `json:"noise_uniformity"`
	EdgeConsistency      float64 `json:"edge_consistency"`
	CompressionArtifacts float64 `json:"compression_artifacts"`
}

// AuthenticityReport is the final result of an analysis request.
// It is created once per request and never modified afterwards.
type AuthenticityReport struct {
	// Score is the authenticity score in [0,100], rounded to one decimal.
	// Higher means more likely authentic.
	Score float64 `json:"score"`

	// Label is the three-way classification derived from Score.
	Label Label `json:"label"`

	// Confidence expresses how far inside its band the score falls,
	// in [0,1], rounded to two decimals.
	Confidence float64 `json:"confidence"`

	// Breakdown holds the individual signal scores scaled to [0,100].
	Breakdown Breakdown `json:"breakdown"`

	// AIModelProbability is the external detection service's probability
	// that the image is AI generated, scaled to [0,100]. Omitted when the
	// external signal was not requested.
	AIModelProbability *float64 `json:"ai_model_probability,omitempty"`

	// Metadata describes the analyzed image.
	Metadata ImageMetadata `json:"metadata"`

	// AnalyzedAt is the time the report was produced.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return roundTo(v, 10)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return roundTo(v, 100)
}

func roundTo(v float64, scale float64) float64 {
	return math.Round(v*scale) / scale
}
