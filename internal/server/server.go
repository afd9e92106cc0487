// Package server hosts the live dashboard: the HTML page, the JSON selection
// API that drives the controller, CSV export, health and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/output"
)

// shutdownTimeout bounds graceful shutdown of each listener.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the dashboard listen address.
	Addr string

	// MetricsAddr, if set, serves /metrics on a second listener as well.
	MetricsAddr string

	// Heading overrides the page title.
	Heading string

	// Registry collects HTTP metrics and backs /metrics. A nil Registry gets
	// a fresh one.
	Registry *prometheus.Registry

	// Logger receives request and lifecycle logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server hosts the dashboard HTTP surface over one controller.
type Server struct {
	ctrl     *controller.Controller
	opts     Options
	logger   *slog.Logger
	registry *prometheus.Registry
	page     *output.HTMLFormatter
	metrics  *httpMetrics
	handler  http.Handler
	now      func() time.Time
}

// New builds a Server for ctrl.
func New(ctrl *controller.Controller, opts Options) *Server {
	s := &Server{
		ctrl:     ctrl,
		opts:     opts,
		logger:   opts.Logger,
		registry: opts.Registry,
		page:     output.NewLiveHTMLFormatter(opts.Heading),
		now:      time.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newHTTPMetrics(s.registry)
	s.handler = s.routes()
	return s
}

// Handler returns the dashboard router.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves the dashboard (and the metrics listener, if
// configured) until ctx is cancelled, then shuts both down gracefully. If
// either listener fails, the other is shut down and the error returned.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.serve(ctx, "dashboard", newHTTPServer(ctx, s.opts.Addr, s.handler))
	})
	if s.opts.MetricsAddr != "" {
		g.Go(func() error {
			return s.serve(ctx, "metrics", newHTTPServer(ctx, s.opts.MetricsAddr, s.metricsHandler()))
		})
	}
	return g.Wait()
}

// newHTTPServer derives request contexts from ctx so open event streams end
// when shutdown begins.
func newHTTPServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func (s *Server) serve(ctx context.Context, name string, srv *http.Server) error {
	serveErr := make(chan error, 1)
	s.logger.Info("listening", "listener", name, "addr", srv.Addr)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown %s server: %w", name, err)
		}
		s.logger.Info("stopped", "listener", name)
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", name, err)
	}
}
