// Package server provides the HTTP transport for the search agent: envelope
// exchange, manifest discovery, health, and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/openfloor-dev/searchagent/agent"
	"github.com/openfloor-dev/searchagent/openfloor"
	"github.com/openfloor-dev/searchagent/pkg/observability"
)

// Server exposes the agent over HTTP.
type Server struct {
	agent      *agent.Agent
	httpServer *http.Server
	port       int
}

// New creates a server for the given agent.
func New(a *agent.Agent, port int) *Server {
	return &Server{
		agent: a,
		port:  port,
	}
}

// Handler builds the HTTP routing for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleEnvelope)
	mux.HandleFunc("/manifest", s.handleManifest)

	mux.HandleFunc("/health", observability.HealthHandler())
	mux.HandleFunc("/health/live", observability.LivenessHandler())
	mux.HandleFunc("/health/ready", observability.ReadinessHandler())
	mux.Handle("/metrics", observability.MetricsHandler())

	return withCORS(withMetrics(mux))
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handleEnvelope decodes an inbound Open Floor payload, runs it through the
// agent, and returns the reply payload. The agent itself never fails; only
// malformed JSON produces a non-200 response.
func (s *Server) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload openfloor.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("Rejecting malformed envelope payload: %v", err)
		writeJSONError(w, http.StatusBadRequest, "invalid envelope payload")
		return
	}

	out := s.agent.ProcessEnvelope(r.Context(), &payload.OpenFloor)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(openfloor.Payload{OpenFloor: *out})
}

// handleManifest serves the agent's manifest for out-of-band discovery.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.agent.Manifest())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// withCORS allows browser-hosted floor managers to reach the agent.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observability.RecordHTTPRequest(r.Method, r.URL.Path,
			fmt.Sprintf("%d", rec.status), time.Since(start))
	})
}
