// Package http exposes the prediction API over JSON HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/disaster-predict/internal/domain"
	"github.com/couchcryptid/disaster-predict/internal/predict"
)

// APIVersion is reported on the landing page.
const APIVersion = "1.0.0"

// Predictor runs the four prediction pipelines.
type Predictor interface {
	EarthquakeSeverity(ctx context.Context, payload domain.Payload) (predict.SeverityResponse, error)
	CyclonePath(ctx context.Context, payload domain.Payload) (predict.PathPrediction, error)
	CycloneSpeedDir(ctx context.Context, payload domain.Payload) (predict.SpeedDirResponse, error)
	CycloneSeverity(ctx context.Context, payload domain.Payload) (predict.SeverityResponse, error)
}

// Server exposes the prediction, health, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewServer creates the API server. corsOrigin is the value sent in
// Access-Control-Allow-Origin; "*" permits any origin.
func NewServer(addr string, predictor Predictor, corsOrigin string, logger *slog.Logger, clock clockwork.Clock) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      corsMiddleware(corsOrigin, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor: predictor,
		logger:    logger,
		clock:     clock,
	}

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/combined/predict", s.handleEarthquakeSeverity)
	mux.HandleFunc("POST /api/v1/combined/predict-speed", s.handleCycloneSpeedDir)
	mux.HandleFunc("POST /api/v1/combined/classify-severity", s.handleCycloneSeverity)
	mux.HandleFunc("POST /api/v1/cyclone/predict-path", s.handleCyclonePath)

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

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Unified Disaster Prediction API",
		"version": APIVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"earthquake":    "/api/v1/combined/predict",
			"cyclone_path":  "/api/v1/cyclone/predict-path",
			"cyclone_speed": "/api/v1/combined/predict-speed",
			"severity":      "/api/v1/combined/classify-severity",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleEarthquakeSeverity(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	resp, err := s.predictor.EarthquakeSeverity(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCycloneSpeedDir(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	resp, err := s.predictor.CycloneSpeedDir(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCycloneSeverity(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	resp, err := s.predictor.CycloneSeverity(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCyclonePath differs from the other prediction handlers: both its
// success and error responses use a success/data envelope.
func (s *Server) handleCyclonePath(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(w, r)
	if !ok {
		return
	}
	resp, err := s.predictor.CyclonePath(r.Context(), payload)
	if err != nil {
		status, message := errorStatus(err)
		writeJSON(w, status, map[string]any{
			"success": false,
			"error":   message,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    resp,
	})
}

// decodeBody parses the request body into a payload. An absent, empty, or
// malformed body produces the 400 response directly.
func decodeBody(w http.ResponseWriter, r *http.Request) (domain.Payload, bool) {
	var payload domain.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No JSON data provided"})
		return nil, false
	}
	return payload, true
}

func writeError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	writeJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps pipeline errors to HTTP status codes. Validation
// failures are the caller's fault; everything else is server-side.
func errorStatus(err error) (int, string) {
	var verr *predict.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

// corsMiddleware adds the CORS response headers and short-circuits
// preflight requests.
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
