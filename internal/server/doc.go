// Package server provides the HTTP API for image authenticity analysis.
//
// Routes:
//   - POST /api/v1/analyze: multipart image upload, returns an
//     authenticity report as JSON
//   - GET /api/v1/health: liveness probe
//   - GET /: service status
//   - GET /metrics: Prometheus metrics
//
// Design decision: We use the chi router rather than http.ServeMux
// because it provides composable middleware, method-based routing, and
// route grouping without codegen or reflection. Response bodies are
// encoded with goccy/go-json for lower per-request encode cost than
// encoding/json on the hot analyze path.
package server
