package server

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// errorResponse is the JSON body returned for all failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

// writeError sends an error response with a human-readable message.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, errorResponse{Error: message})
}
