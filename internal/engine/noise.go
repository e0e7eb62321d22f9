package engine

import (
	"math"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// Noise signal constants.
const (
	// noiseWindowSize is the side length of the square sampling windows.
	noiseWindowSize = 8

	// noiseCVThreshold is the coefficient of variation at which the noise
	// distribution is considered fully natural. Sensor noise varies across
	// regions; a cv at or above this value scores zero suspicion.
	noiseCVThreshold = 0.15
)

// NoiseAnalyzer scores the uniformity of local pixel-intensity variance.
// Real sensor noise varies across regions of the frame; synthetic imagery
// tends to show uniform or absent noise.
type NoiseAnalyzer struct{}

// NewNoiseAnalyzer creates a NoiseAnalyzer.
func NewNoiseAnalyzer() *NoiseAnalyzer {
	return &NoiseAnalyzer{}
}

// Name returns the signal name.
func (a *NoiseAnalyzer) Name() string {
	return model.SignalNoiseUniformity
}

// Analyze partitions the grayscale plane into non-overlapping 8x8 windows
// (partial windows at the right and bottom edges are discarded), computes
// the intensity variance of each window, and scores the coefficient of
// variation of those variances. A low cv means the noise level barely
// changes across the frame, which is suspicious.
//
// Images smaller than one window in either dimension have no samples and
// yield the neutral score.
func (a *NoiseAnalyzer) Analyze(raster *imaging.Raster) float64 {
	gray := raster.Gray()
	width, height := raster.Width(), raster.Height()

	variances := make([]float64, 0, (width/noiseWindowSize)*(height/noiseWindowSize))
	for y := 0; y+noiseWindowSize <= height; y += noiseWindowSize {
		for x := 0; x+noiseWindowSize <= width; x += noiseWindowSize {
			variances = append(variances, windowVariance(gray, width, x, y))
		}
	}

	if len(variances) == 0 {
		return neutralScore
	}

	meanVar, stdVar := meanStddev(variances)

	cv := 0.0
	if meanVar > 0 {
		cv = stdVar / meanVar
	}

	return 1 - math.Min(cv/noiseCVThreshold, 1)
}

// windowVariance computes the population variance of intensities within the
// window whose top-left corner is (x0, y0).
func windowVariance(gray []uint8, stride, x0, y0 int) float64 {
	const n = noiseWindowSize * noiseWindowSize

	var sum float64
	for y := y0; y < y0+noiseWindowSize; y++ {
		row := gray[y*stride+x0 : y*stride+x0+noiseWindowSize]
		for _, v := range row {
			sum += float64(v)
		}
	}
	mean := sum / n

	var ss float64
	for y := y0; y < y0+noiseWindowSize; y++ {
		row := gray[y*stride+x0 : y*stride+x0+noiseWindowSize]
		for _, v := range row {
			d := float64(v) - mean
			ss += d * d
		}
	}
	return ss / n
}

// meanStddev computes the mean and population standard deviation of samples.
func meanStddev(samples []float64) (mean, stddev float64) {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean = sum / float64(len(samples))

	var ss float64
	for _, v := range samples {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(samples)))
}
