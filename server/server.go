// Package server exposes the finding-aid mapper over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lehigh-university-libraries/findingaid/ead3"
	"github.com/lehigh-university-libraries/findingaid/format"
	"github.com/lehigh-university-libraries/findingaid/mapping"
	"github.com/lehigh-university-libraries/findingaid/schema"
)

// DefaultMaxBodyBytes limits the size of a posted document.
const DefaultMaxBodyBytes = 32 << 20

// Server is the HTTP API server for the mapper.
type Server struct {
	router       chi.Router
	mapper       *ead3.Mapper
	profile      *mapping.Profile
	formats      *format.Registry
	vocab        *schema.Vocabulary
	registry     *prometheus.Registry
	metrics      *Metrics
	maxBodyBytes int64
	log          *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithFormats replaces the format registry.
func WithFormats(r *format.Registry) Option {
	return func(s *Server) {
		s.formats = r
	}
}

// WithVocabulary replaces the output vocabulary.
func WithVocabulary(v *schema.Vocabulary) Option {
	return func(s *Server) {
		s.vocab = v
	}
}

// WithRegistry sets the Prometheus registry metrics are registered with
// and served from.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// WithMaxBodyBytes limits the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// NewServer creates and configures the HTTP server. The mapper is shared by
// all requests.
func NewServer(mapper *ead3.Mapper, profile *mapping.Profile, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		mapper:       mapper,
		profile:      profile,
		formats:      format.DefaultRegistry,
		vocab:        schema.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	s.metrics = NewMetrics(s.registry)
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(Instrument(s.metrics))

	r.Get("/health", s.handleHealth)
	r.Get("/fields", s.handleFields)
	r.Get("/formats", s.handleFormats)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/map", s.handleMap)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("shutdown", "error", err)
		}
	}()

	s.log.Info("starting findingaid server", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
