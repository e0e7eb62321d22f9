// Package model defines the core data structures used throughout VeriDoc.
//
// This package contains the following main types:
//   - AuthenticityReport: The final analysis result returned to callers
//   - AnalysisScores: The raw per-signal scores produced by the engine
//   - FusionWeights: The weighting configuration for score fusion
//   - Label: The three-way authenticity classification
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (engine, server, report, history) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for API responses and
// database storage.
package model
