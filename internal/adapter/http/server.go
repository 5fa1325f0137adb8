// Package http exposes the engine's invocation boundary over HTTP:
// a sync trigger, read-side KPIs, and the usual health and metrics routes.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
	"github.com/emberwatch/calfire-incident-etl/internal/pipeline"
)

// SyncRunner is the slice of the engine the server needs.
type SyncRunner interface {
	Run(ctx context.Context) (pipeline.RunSummary, error)
	CheckReadiness(ctx context.Context) error
	YearOverYear(ctx context.Context) ([]domain.YearStats, error)
}

// Server exposes sync, KPI, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	engine     SyncRunner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /sync, /kpis/yearly, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, engine SyncRunner, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: mux,
			// A sync run holds the request open while it talks to the feed
			// and the store, so the write timeout is generous.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		engine: engine,
		logger: logger,
	}

	mux.HandleFunc("POST /sync", s.handleSync)
	mux.HandleFunc("GET /kpis/yearly", s.handleYearlyKPIs)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleSync runs one sync invocation and returns its summary. The summary
// body is returned for failed runs too: the scheduler relies on it for
// monitoring, and the next scheduled trigger is the retry.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Run(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, summary)
}

func (s *Server) handleYearlyKPIs(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.YearOverYear(r.Context())
	if err != nil {
		s.logger.Error("yearly kpi computation failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.engine.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
