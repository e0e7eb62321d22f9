// Package engine implements the authenticity scoring engine.
//
// # Purpose
//
// The engine assigns a heuristic authenticity score to a decoded raster
// image, classifying it as Verified, Suspicious, or AI Generated with a
// confidence value and a per-signal breakdown.
//
// # Design Philosophy
//
// The engine follows a modular analyzer pattern where each statistical
// signal is implemented as a separate SignalAnalyzer. This design was
// chosen because:
//  1. Each signal has unique statistics and thresholds
//  2. Analyzers are pure functions of the same immutable raster, so they
//     run concurrently without synchronization
//  3. Makes it easy to add new signals without modifying existing code
//  4. Simplifies testing of individual signals
//
// # Signals
//
//   - metadata_anomaly: absence/shape of embedded image metadata
//   - noise_uniformity: coefficient of variation of local pixel variance
//   - edge_consistency: relative variance of Sobel gradient magnitudes
//   - compression_artifacts: average per-channel color dispersion
//
// An optional external AI-generation probability is fetched concurrently
// with the heuristic analyzers and blended in hybrid mode.
//
// # Neutral Scores
//
// Degenerate inputs (images too small to window, zero-mean statistics,
// missing channels) yield the neutral score 0.5 rather than an error.
// This is a normal outcome, not a failure.
//
// # Usage
//
//	eng := engine.New(engine.WithProvider(provider))
//	report, err := eng.Analyze(ctx, raster)
package engine
