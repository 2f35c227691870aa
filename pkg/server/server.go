// Package server exposes the catalog and the render pipeline over HTTP.
//
//	GET /healthz                          liveness and build info
//	GET /api/systems                      catalog summary
//	GET /api/systems/{name}               one system with its coefficients
//	GET /api/systems/{name}/diagram.svg   Graphviz diagram of the maps
//	GET /api/render/{name}.{format}       rendered attractor (png, svg, json)
//	GET /metrics                          Prometheus metrics, when configured
//
// Render accepts the query parameters points, seed, width, height, zoom,
// x and y. A request without seed draws a random one and reports it in the
// X-Ifscope-Seed header.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr      = "127.0.0.1:8080"
	DefaultMaxPoints = 2_000_000
)

// Config configures a [Server].
type Config struct {
	Addr          string
	MaxPoints     int
	DefaultPoints int

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// Server serves the HTTP API.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	catalog *ifs.Catalog
	logger  *log.Logger
	router  chi.Router
}

// New builds a server around runner. Zero config fields take the package
// defaults.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = DefaultMaxPoints
	}
	if cfg.DefaultPoints <= 0 {
		cfg.DefaultPoints = min(pipeline.DefaultPoints, cfg.MaxPoints)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		catalog: runner.Catalog,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/systems", s.handleListSystems)
		r.Get("/systems/{name}", s.handleGetSystem)
		r.Get("/systems/{name}/diagram.svg", s.handleDiagram)
		r.Get("/render/{name}.{format}", s.handleRender)
	})
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Code: "NOT_FOUND"})
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
