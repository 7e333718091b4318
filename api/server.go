// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, calling the resolver and
// estimator, and output serialization. It NEVER performs pricing math.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"traceflow-pricing/core/pricing"
	"traceflow-pricing/core/savings"
	"traceflow-pricing/core/scenario"
	terrors "traceflow-pricing/internal/errors"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	// Version is reported by /version and /health
	Version string

	// Store serves the active catalog; nil uses the canonical table
	Store *pricing.Store

	// Model is the savings model; zero value uses savings.DefaultModel
	Model *savings.Model

	// Concurrency bounds /v1/scenarios fan-out
	Concurrency int

	// RateLimit is requests per second across all clients; 0 disables
	RateLimit float64
	RateBurst int

	// ReadTimeout bounds request reads in ListenAndServe
	ReadTimeout time.Duration

	Logger *zap.Logger
}

// Server is the API server
type Server struct {
	mux       *http.ServeMux
	handler   http.Handler
	version   string
	store     *pricing.Store
	estimator *savings.Estimator
	runner    *scenario.Runner
	limiter   *rate.Limiter
	metrics   *Metrics
	logger    *zap.Logger

	readTimeout time.Duration
}

// NewServer creates a new API server
func NewServer(opts Options) (*Server, error) {
	store := opts.Store
	if store == nil {
		store = pricing.NewStore(nil)
	}
	model := savings.DefaultModel()
	if opts.Model != nil {
		model = *opts.Model
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// The store is the resolver, so every estimate sees the catalog
	// active at the moment it runs.
	estimator, err := savings.NewEstimator(store, model)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:         http.NewServeMux(),
		version:     opts.Version,
		store:       store,
		estimator:   estimator,
		runner:      scenario.NewRunner(estimator, opts.Concurrency),
		limiter:     newLimiter(opts.RateLimit, opts.RateBurst),
		metrics:     NewMetrics(),
		logger:      logger,
		readTimeout: opts.ReadTimeout,
	}

	s.registerRoutes()
	s.handler = withRequestID(s.withRateLimit(s.mux))
	return s, nil
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.Handle("POST /v1/tiers/resolve", s.instrument("resolve", s.handleResolve))
	s.mux.Handle("POST /v1/savings/estimate", s.instrument("estimate", s.handleEstimate))
	s.mux.Handle("POST /v1/scenarios", s.instrument("scenarios", s.handleScenarios))
	s.mux.Handle("GET /v1/tiers", s.instrument("tiers", s.handleTiers))

	// Supporting endpoints
	s.mux.Handle("GET /health", s.instrument("health", s.handleHealth))
	s.mux.Handle("GET /version", s.instrument("version", s.handleVersion))
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	catalog := s.store.Load()
	s.writeJSON(w, map[string]interface{}{
		"status":       "healthy",
		"version":      s.version,
		"catalog":      catalog.Source(),
		"catalog_hash": catalog.Hash(),
		"time":         time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "traceflow-pricing",
		"api_version": "v1",
	}, http.StatusOK)
}

// decode reads a JSON body strictly: unknown fields and trailing data are rejected
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest, nil)
		return false
	}
	if dec.More() {
		s.writeError(w, r, "INVALID_JSON", "unexpected data after JSON body", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int, ctx map[string]interface{}) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Context: ctx}}, status)
}

// writeDomainError maps a typed error to an HTTP status
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody(err)
	status := http.StatusInternalServerError
	if body.Code == "VALIDATION_ERROR" {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
	}
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

func errorBody(err error) ErrorBody {
	e, ok := terrors.As(err)
	if !ok {
		return ErrorBody{Code: "INTERNAL_ERROR", Message: err.Error()}
	}
	code := string(e.Type)
	if e.Type == terrors.TypeInput {
		code = "VALIDATION_ERROR"
	}
	return ErrorBody{Code: code, Message: e.Message, Context: e.Context}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
