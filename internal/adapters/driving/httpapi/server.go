// Package httpapi serves the SynapText REST API used by the web front-end.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/0M-3/synaptext/internal/core/ports/driving"
	"github.com/0M-3/synaptext/internal/logger"
)

// DefaultMaxUploadBytes caps the size of an uploaded PDF.
const DefaultMaxUploadBytes = 64 << 20

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// ErrMissingPorts is returned when a required service is not provided.
var ErrMissingPorts = errors.New("httpapi: ingest, source, graph, summary and export services are required")

// Ports aggregates the driving services exposed over HTTP.
type Ports struct {
	Ingest   driving.IngestService
	Analysis driving.AnalysisService
	Source   driving.SourceService
	Graph    driving.GraphService
	Summary  driving.SummaryService
	Export   driving.ExportService
}

// Validate ensures all required ports are set.
// Analysis is optional; /process-pdf answers 503 without it.
func (p *Ports) Validate() error {
	if p.Ingest == nil || p.Source == nil || p.Graph == nil || p.Summary == nil || p.Export == nil {
		return ErrMissingPorts
	}
	return nil
}

// Config holds HTTP server options.
type Config struct {
	// AllowedOrigins is the CORS allow-list. "*" allows any origin.
	AllowedOrigins []string

	// MaxUploadBytes caps request bodies on upload routes.
	MaxUploadBytes int64
}

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	config Config
	router chi.Router
}

// NewServer creates a server with all routes registered.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{ports: ports, config: cfg}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware(s.config.AllowedOrigins))
	r.Use(middleware.StripSlashes)

	r.Get("/", s.handleRoot)
	r.Post("/upload-pdf", s.handleUpload)
	r.Post("/process-pdf", s.handleProcess)

	r.Route("/sources", func(r chi.Router) {
		r.Get("/", s.handleListSources)
		r.Route("/{sourceID}", func(r chi.Router) {
			r.Get("/", s.handleGetSource)
			r.Delete("/", s.handleDeleteSource)
			r.Get("/chunks", s.handleListChunks)
			r.Get("/keywords", s.handleListKeywords)
			r.Get("/graph", s.handleGraph)
			r.Get("/summary/{keywordID}", s.handleSummary)
			r.Get("/summary_zip", s.handleExport)
		})
	})

	return r
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	}()

	logger.Info("http listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs each request through the verbose logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
