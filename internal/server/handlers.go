package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/veridoc/veridoc/internal/imaging"
)

// uploadFieldName is the multipart form field carrying the document.
const uploadFieldName = "file"

// statusResponse is the body of the health and root endpoints.
type statusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// handleAnalyze accepts a multipart document upload, runs the full
// authenticity analysis, and returns the report as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, s.logger, http.StatusRequestEntityTooLarge, "uploaded file is too large")
			return
		}
		writeError(w, s.logger, http.StatusBadRequest, "malformed multipart request")
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "missing file field in upload")
		return
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, s.logger, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	if !imaging.SupportedContentType(contentType) {
		writeError(w, s.logger, http.StatusBadRequest, imaging.ErrUnsupportedContentType.Error())
		return
	}

	raster, err := imaging.Decode(data, contentType, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrEmptyDocument):
			writeError(w, s.logger, http.StatusBadRequest, imaging.ErrEmptyDocument.Error())
		case errors.Is(err, imaging.ErrUnsupportedContentType):
			writeError(w, s.logger, http.StatusBadRequest, imaging.ErrUnsupportedContentType.Error())
		default:
			s.logger.Error("decode failed", "filename", header.Filename, "error", err)
			writeError(w, s.logger, http.StatusInternalServerError, "failed to decode uploaded document")
		}
		return
	}

	report, err := s.engine.Analyze(r.Context(), raster)
	if err != nil {
		s.logger.Error("analysis failed", "filename", header.Filename, "error", err)
		writeError(w, s.logger, http.StatusInternalServerError, "analysis could not complete")
		return
	}

	analysesTotal.WithLabelValues(report.Label.String()).Inc()

	// History persistence is best-effort: a storage failure must not turn
	// a completed analysis into a client-visible error.
	if s.store != nil {
		if _, err := s.store.Save(r.Context(), report); err != nil {
			s.logger.Warn("failed to save report to history", "error", err)
		}
	}

	writeJSON(w, s.logger, http.StatusOK, report)
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, statusResponse{
		Service: "veridoc",
		Status:  "ok",
	})
}

// handleRoot reports service identity and version.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, statusResponse{
		Service: "veridoc",
		Status:  "ok",
		Version: s.version,
	})
}
