// Package server exposes the perktree pipeline over HTTP.
//
// # Routes
//
//	POST /v1/layout   records + options -> layout and rendered artifacts
//	POST /v1/render   layout + options  -> rendered artifacts
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus exposition, when a gatherer is configured
//
// Every response carries an X-Request-ID header. Errors are returned as
//
//	{"error": {"code": "INVALID_INPUT", "message": "..."}, "request_id": "..."}
//
// with the status code chosen by [perrors.HTTPStatus].
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BardicNoel/perktree/pkg/config"
	"github.com/BardicNoel/perktree/pkg/observability"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	// Runner executes layouts. Required.
	Runner *pipeline.Runner

	// Config holds the listen address, limits and timeouts.
	Config config.ServerConfig

	// Defaults are applied to every request before the request's own
	// options are decoded over them.
	Defaults pipeline.Options

	// Gatherer backs /metrics. The route is omitted when nil.
	Gatherer prometheus.Gatherer

	Logger *log.Logger
	Hooks  observability.Hooks
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	cfg      config.ServerConfig
	defaults pipeline.Options
	logger   *log.Logger
	hooks    observability.Hooks
	router   chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   opts.Runner,
		cfg:      opts.Config,
		defaults: opts.Defaults,
		logger:   logger,
		hooks:    opts.Hooks.WithDefaults(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully within ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
