// Package server exposes a loaded graph over HTTP.
//
// Routes:
//
//	GET /healthz              liveness and graph summary
//	GET /graph                vertices, arcs and the rendered listing as JSON
//	GET /graph.{format}       diagram as dot, svg or png; ?from=&to=&dimension= highlights a route
//	GET /routes?from=A&to=B   minimum-time and minimum-cost routes
//	GET /metrics              Prometheus metrics, when a handler is configured
//
// Unreachable routes are reported with "reachable": false and a null
// total. Errors use the body shape of package httputil.
//
// The server holds one immutable graph, shared by every request goroutine.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/httputil"
	"github.com/matzehuels/modalroute/pkg/pipeline"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

const shutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	Addr         string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Uppercase normalizes query endpoints before searching.
	Uppercase bool

	// ResultLog, when set, receives an entry for every answered route query.
	ResultLog string
	LogStyle  resultlog.Style

	// Metrics is mounted on /metrics when non-nil.
	Metrics http.Handler
}

// Server answers route queries on one loaded graph.
type Server struct {
	runner  *pipeline.Runner
	graph   *pipeline.Graph
	logger  *log.Logger
	opts    Options
	handler http.Handler
}

// New builds a server for g. A nil logger uses log.Default().
func New(runner *pipeline.Runner, g *pipeline.Graph, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{runner: runner, graph: g, logger: logger, opts: opts}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler, including CORS and middleware.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, s.recoverer, s.instrument)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/graph", s.handleGraph)
	r.Get("/graph.{format}", s.handleRender)
	r.Get("/routes", s.handleRoutes)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, apperr.New(apperr.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		_ = httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error": httputil.ErrorBody{Code: apperr.ErrCodeUnsupported, Message: r.Method + " not allowed"},
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		ExposedHeaders: []string{"X-Cache", "X-Request-Id"},
	}).Handler(r)
}

// Run listens on opts.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "listen on %s", s.opts.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String(), "graph", s.graph.Source, "vertices", s.graph.VertexCount())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
