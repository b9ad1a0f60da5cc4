// Package server provides the HTTP server for the envelope gateway daemon.
//
// The server exposes three surfaces:
//
// # Envelope Endpoint
//
// POST <basePath> - Receives request envelopes, replays each bundled
// sub-request against the configured upstream origin through a reverse
// proxy, and replies with a 207 response envelope. The base path defaults
// to /multi.
//
// # Health & Metrics
//
//   - GET /health  - Liveness probe
//   - GET /metrics - Prometheus metrics (if enabled)
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sirosfoundation/go-httpmulti/internal/config"
	"github.com/sirosfoundation/go-httpmulti/pkg/envelope"
	"github.com/sirosfoundation/go-httpmulti/pkg/gateway"
	"github.com/sirosfoundation/go-httpmulti/pkg/mime"
)

// Server is the envelope gateway HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	httpSrv *http.Server
	gateway *gateway.Gateway
	metrics *metrics
}

// New creates a new gateway server
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	upstream, err := url.Parse(cfg.Upstream.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream url: %w", err)
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: newMetrics(),
	}

	// Sub-requests replay against the configured origin
	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("upstream request failed", "target", r.URL.String(), "error", err)
		w.WriteHeader(http.StatusBadGateway)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.metrics.subrequestsTotal.Inc()
		proxy.ServeHTTP(w, r)
	})

	var mimeOpts []mime.ParserOption
	if cfg.Parser.TempDir != "" {
		mimeOpts = append(mimeOpts, mime.WithTempDir(cfg.Parser.TempDir))
	}

	s.gateway = gateway.New(next,
		gateway.WithParser(envelope.NewParser(mime.NewParser(mimeOpts...))),
		gateway.WithLogger(logger),
		gateway.WithMaxParts(cfg.Limits.MaxParts),
		gateway.WithMaxBodyBytes(cfg.Limits.MaxBodyBytes),
	)

	// Set up HTTP routes
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start begins listening on the configured port
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.httpSrv.Addr = addr
	s.logger.Info("starting gateway server",
		"addr", addr,
		"tls", s.config.Server.TLS.Enabled,
		"upstream", s.config.Upstream.URL,
	)
	if s.config.Server.TLS.Enabled {
		return s.httpSrv.ListenAndServeTLS(
			s.config.Server.TLS.CertFile,
			s.config.Server.TLS.KeyFile,
		)
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	basePath := strings.TrimSuffix(s.config.Server.BasePath, "/")
	if basePath == "" {
		basePath = "/multi"
	}

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	// Envelope endpoint
	mux.HandleFunc("POST "+basePath, s.withLogging(s.withMetrics(s.gateway.ServeHTTP)))

	// Prometheus metrics
	if s.config.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	}
}

// Middleware

// withLogging logs one line per envelope exchange
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	}
}

// withMetrics tracks envelope counters and latency
func (s *Server) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.envelopesTotal.Inc()

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)

		s.metrics.envelopeDuration.Observe(time.Since(start).Seconds())
		if rec.status >= http.StatusBadRequest {
			s.metrics.envelopeErrors.Inc()
		}
	}
}

// statusRecorder remembers the status code a handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Health handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
