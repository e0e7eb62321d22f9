package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/engine"
	"github.com/veridoc/veridoc/internal/history"
)

// Timeouts for the underlying http.Server. Read covers the full upload;
// write covers PDF rendering plus analysis on large documents.
const (
	readTimeout  = 60 * time.Second
	writeTimeout = 120 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server serves the authenticity analysis HTTP API.
type Server struct {
	cfg     *config.Config
	engine  *engine.Engine
	store   *history.Store
	logger  *slog.Logger
	version string

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithHistory enables report persistence to the given store.
func WithHistory(store *history.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version string reported by the root endpoint.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a Server with the given configuration and analysis engine.
func New(cfg *config.Config, eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		engine:  eng,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		version: "dev",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Router builds the HTTP routing tree. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(observe(s.logger))

	r.Get("/", s.handleRoot)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/analyze", s.handleAnalyze)
	})

	return r
}

// ListenAndServe starts the server and blocks until ctx is canceled or
// the listener fails. On cancellation the server drains in-flight
// requests within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", "address", s.cfg.ListenAddress)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
