// Package api exposes the simplifier and solver pipelines over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/njchilds90/mathsteps/internal/cas"
	"github.com/njchilds90/mathsteps/internal/config"
	"github.com/njchilds90/mathsteps/internal/ratelimit"
	"github.com/njchilds90/mathsteps/internal/simplifier"
	"github.com/njchilds90/mathsteps/internal/solver"
)

// limiterIdleTTL is how long an unused client bucket is kept.
const limiterIdleTTL = 10 * time.Minute

// Server represents the HTTP API server
type Server struct {
	router       *http.ServeMux
	server       *http.Server
	logger       *slog.Logger
	metrics      *Metrics
	limiter      *ratelimit.MapLimiter
	simplifier   simplifier.Pipeline
	solver       solver.Pipeline
	maxBodyBytes int64
	gzip         bool
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, engine cas.Engine, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router:       http.NewServeMux(),
		logger:       logger,
		simplifier:   simplifier.Pipeline{Engine: engine, MaxInputLength: cfg.Limits.MaxInputLength},
		solver:       solver.Pipeline{Engine: engine, MaxInputLength: cfg.Limits.MaxInputLength},
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		gzip:         cfg.Server.Gzip,
	}
	if cfg.Metrics.Enabled {
		s.metrics = NewMetrics()
	}
	if cfg.RateLimit.Enabled {
		s.limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdleTTL)
	}

	s.registerRoutes()

	handler, err := s.applyMiddleware(s.router)
	if err != nil {
		return nil, err
	}
	s.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return s, nil
}

func (s *Server) registerRoutes() {
	limit := RateLimitMiddleware(s.limiter, s.logger)
	s.router.Handle("/simplify", limit(http.HandlerFunc(s.handleSimplify)))
	s.router.Handle("/solve", limit(http.HandlerFunc(s.handleSolve)))
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/schema", s.handleSchema)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) (http.Handler, error) {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = s.metrics.Middleware()(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	if s.gzip {
		wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(0))
		if err != nil {
			return nil, fmt.Errorf("gzip wrapper: %w", err)
		}
		handler = wrap(handler)
	}
	handler = RequestIDMiddleware()(handler)
	return handler, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully")
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}
