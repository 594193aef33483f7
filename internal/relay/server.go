// Package relay exposes the run endpoint on a local listener and forwards
// submissions to the remote service unchanged. It never executes or inspects
// the submitted code.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/basedlol/ty/internal/client"
	"github.com/basedlol/ty/internal/invoke"
)

// DefaultMaxBodySize bounds accepted form bodies (1 MiB).
const DefaultMaxBodySize = 1 << 20

// Config holds relay server configuration.
type Config struct {
	Listen      string
	MaxBodySize int64
}

// Server represents the local relay HTTP server.
type Server struct {
	config Config
	runner client.Runner
	logger *slog.Logger
	server *http.Server
}

// New creates a new relay server instance.
func New(config Config, runner client.Runner, logger *slog.Logger) *Server {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	return &Server{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the relay HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute, // remote runs can be slow; no timeout of our own
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("relay server starting", "listen", s.config.Listen)

	// Run server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("relay server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("relay server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Post("/run.ty", s.handleRun)

	return r
}

// handleRun forwards one submission to the remote endpoint and answers with
// the trimmed output as plain text.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	req := invoke.Request{
		Code:  r.PostFormValue("code"),
		Input: r.PostFormValue("input"),
	}

	out, err := s.runner.Run(r.Context(), req)
	if err != nil {
		s.logger.Error("forward failed", "error", err)
		http.Error(w, "upstream request failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, out)
}

// loggingMiddleware logs HTTP requests (no body content, it may hold code).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("relay request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
