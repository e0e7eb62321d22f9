package engine

import (
	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// Metadata signal constants.
const (
	// missingEXIFPenalty is added when no embedded metadata fields exist.
	// Cameras write EXIF; generators and screenshot pipelines usually don't.
	missingEXIFPenalty = 0.3

	// syntheticFormatPenalty is added for RGB images in formats commonly
	// produced by generative systems (PNG, WEBP).
	syntheticFormatPenalty = 0.1
)

// MetadataAnalyzer scores the absence and shape of embedded image metadata.
// It reads only the EXIF snapshot and format captured at decode time, never
// the pixel data.
type MetadataAnalyzer struct{}

// NewMetadataAnalyzer creates a MetadataAnalyzer.
func NewMetadataAnalyzer() *MetadataAnalyzer {
	return &MetadataAnalyzer{}
}

// Name returns the signal name.
func (a *MetadataAnalyzer) Name() string {
	return model.SignalMetadataAnomaly
}

// Analyze scores metadata anomalies: +0.3 for a missing EXIF block and +0.1
// for an RGB image in a generator-typical format, clamped to 1.0.
func (a *MetadataAnalyzer) Analyze(raster *imaging.Raster) float64 {
	score := 0.0

	if !raster.EXIF().Present {
		score += missingEXIFPenalty
	}

	if raster.Mode() == "RGB" {
		switch raster.Format() {
		case "PNG", "WEBP":
			score += syntheticFormatPenalty
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
