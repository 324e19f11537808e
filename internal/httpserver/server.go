// Package httpserver runs HTTP routes under go-supervisor.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable  = (*Server)(nil)
	_ supervisor.Stateable = (*Server)(nil)
	_ supervisor.Readiness = (*Server)(nil)
)

// Timeouts configures the underlying http.Server. A zero Write means no write
// deadline, which long-lived SSE and streamable GET responses need. Other zero
// values keep the go-supervisor defaults.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
	Drain time.Duration
}

// runner is the part of httpserver.Runner used here.
type runner interface {
	Run(ctx context.Context) error
	Stop()
	GetState() string
	IsReady() bool
	GetStateChan(ctx context.Context) <-chan string
}

// Server wraps go-supervisor's httpserver.Runner with a fixed address and
// route table.
type Server struct {
	id       string
	address  string
	routes   []httpserver.Route
	timeouts Timeouts
	logger   *slog.Logger

	mu     sync.Mutex
	runner runner
}

// Option configures a Server.
type Option func(*Server)

// WithTimeouts sets the server timeouts.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t
	}
}

// WithLogHandler sets the log handler.
func WithLogHandler(handler slog.Handler) Option {
	return func(s *Server) {
		if handler != nil {
			s.logger = slog.New(handler).WithGroup("httpserver").With("id", s.id)
		}
	}
}

// New creates a Server for address with the given routes. No socket is bound
// until Run.
func New(id, address string, routes []httpserver.Route, opts ...Option) (*Server, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}
	s := &Server{
		id:      id,
		address: address,
		routes:  routes,
		logger:  slog.Default().WithGroup("httpserver").With("id", id),
	}
	for _, opt := range opts {
		opt(s)
	}

	r, err := httpserver.NewRunner(httpserver.WithConfigCallback(s.buildConfig))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRunner, err)
	}
	s.runner = r
	return s, nil
}

// buildConfig is the go-supervisor config callback.
func (s *Server) buildConfig() (*httpserver.Config, error) {
	s.mu.Lock()
	routes := make([]httpserver.Route, len(s.routes))
	copy(routes, s.routes)
	t := s.timeouts
	s.mu.Unlock()

	opts := []httpserver.ConfigOption{
		httpserver.WithServerCreator(serverCreator),
		httpserver.WithWriteTimeout(t.Write),
	}
	if t.Read > 0 {
		opts = append(opts, httpserver.WithReadTimeout(t.Read))
	}
	if t.Idle > 0 {
		opts = append(opts, httpserver.WithIdleTimeout(t.Idle))
	}
	if t.Drain > 0 {
		opts = append(opts, httpserver.WithDrainTimeout(t.Drain))
	}

	cfg, err := httpserver.NewConfig(s.address, routes, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (s *Server) String() string {
	return fmt.Sprintf("HTTPServer[%s]", s.id)
}

// Run binds the address and serves until ctx is cancelled or Stop is called.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", "address", s.address, "routes", len(s.routes))
	if err := s.runner.Run(ctx); err != nil {
		return fmt.Errorf("%s on %s: %w", s, s.address, err)
	}
	return nil
}

func (s *Server) Stop() {
	s.logger.Info("Stopping HTTP server", "address", s.address)
	s.runner.Stop()
}

func (s *Server) GetState() string {
	return s.runner.GetState()
}

// IsReady reports whether the listener is accepting connections.
func (s *Server) IsReady() bool {
	return s.runner.IsReady()
}

func (s *Server) GetStateChan(ctx context.Context) <-chan string {
	return s.runner.GetStateChan(ctx)
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.address
}

// NewRoute builds a go-supervisor route that serves h at path, wrapped by
// the given middlewares in order. Streaming always runs first so h can flush.
func NewRoute(id, path string, h http.Handler, middlewares ...httpserver.HandlerFunc) (httpserver.Route, error) {
	chain := append([]httpserver.HandlerFunc{Streaming}, middlewares...)
	r, err := httpserver.NewRouteFromHandlerFunc(id, path, h.ServeHTTP, chain...)
	if err != nil {
		return httpserver.Route{}, fmt.Errorf("%w %s: %w", ErrInvalidRoute, path, err)
	}
	return *r, nil
}
