package engine

import (
	"math"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// edgeCVThreshold is the relative variance (variance / mean squared) of the
// gradient-magnitude map at which the edge distribution is considered fully
// natural. Synthetic imagery tends to render edges with abnormally uniform
// strength, pushing the relative variance toward zero.
const edgeCVThreshold = 0.25

// Sobel gradient kernels, row-major.
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// EdgeAnalyzer scores the uniformity of the gradient-magnitude distribution.
// Natural photographs show wide variance in edge strength across the frame;
// overly uniform sharpness is a synthesis tell.
type EdgeAnalyzer struct{}

// NewEdgeAnalyzer creates an EdgeAnalyzer.
func NewEdgeAnalyzer() *EdgeAnalyzer {
	return &EdgeAnalyzer{}
}

// Name returns the signal name.
func (a *EdgeAnalyzer) Name() string {
	return model.SignalEdgeConsistency
}

// Analyze convolves the grayscale plane with the two Sobel kernels using
// edge-replication padding, so the magnitude map covers every pixel
// including the borders. It then scores the relative variance of the
// magnitudes: score = 1 - min((var/mean^2)/0.25, 1).
//
// A zero-mean magnitude map (perfectly flat image) carries no edge
// information and yields the neutral score.
func (a *EdgeAnalyzer) Analyze(raster *imaging.Raster) float64 {
	gray := raster.Gray()
	width, height := raster.Width(), raster.Height()
	if width == 0 || height == 0 {
		return neutralScore
	}

	// Clamp coordinates into the plane; reads outside the border replicate
	// the nearest edge sample.
	sample := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= width {
			x = width - 1
		}
		if y < 0 {
			y = 0
		} else if y >= height {
			y = height - 1
		}
		return float64(gray[y*width+x])
	}

	var sum, sumSq float64
	n := float64(width * height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := sample(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			mag := math.Hypot(gx, gy)
			sum += mag
			sumSq += mag * mag
		}
	}

	mean := sum / n
	if mean <= 0 {
		return neutralScore
	}
	variance := sumSq/n - mean*mean
	if variance < 0 {
		// Catastrophic cancellation on near-constant magnitudes.
		variance = 0
	}

	edgeCV := variance / (mean * mean)
	return 1 - math.Min(edgeCV/edgeCVThreshold, 1)
}
