package engine

import (
	"math"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// compressionStddevThreshold is the average per-channel standard deviation
// at which color dispersion is considered fully natural. Heavily compressed
// or synthetically smooth imagery clusters well below it.
const compressionStddevThreshold = 50.0

// CompressionAnalyzer scores overall color dispersion. Abnormally low
// per-channel standard deviation correlates with aggressive compression or
// synthetic smoothness.
type CompressionAnalyzer struct{}

// NewCompressionAnalyzer creates a CompressionAnalyzer.
func NewCompressionAnalyzer() *CompressionAnalyzer {
	return &CompressionAnalyzer{}
}

// Name returns the signal name.
func (a *CompressionAnalyzer) Name() string {
	return model.SignalCompressionArtifacts
}

// Analyze averages the standard deviation of the first three color channels
// and scores it against the dispersion threshold. Rasters with fewer than
// three channels carry no usable color statistics and yield the neutral
// score.
func (a *CompressionAnalyzer) Analyze(raster *imaging.Raster) float64 {
	if raster.Channels() < 3 {
		return neutralScore
	}

	pix := raster.RGB()
	n := raster.Width() * raster.Height()
	if n == 0 {
		return neutralScore
	}

	var total float64
	for ch := 0; ch < 3; ch++ {
		var sum, sumSq float64
		for i := ch; i < n*3; i += 3 {
			v := float64(pix[i])
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(n)
		variance := sumSq/float64(n) - mean*mean
		if variance < 0 {
			variance = 0
		}
		total += math.Sqrt(variance)
	}

	avgStddev := total / 3
	return 1 - math.Min(avgStddev/compressionStddevThreshold, 1)
}
