// Package toolserver exposes a directory of tools as an MCP server over HTTP.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atlanticdynamic/mcplauncher/internal/httpserver"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
	"github.com/atlanticdynamic/mcplauncher/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	supervisorHTTP "github.com/robbyt/go-supervisor/runnables/httpserver"
)

const serverName = "mcplauncher"

// Route paths served by HTTPApp.
const (
	StreamablePath = "/mcp"
	SSEPath        = "/sse"
	HealthPath     = "/health"
)

// Server holds the loaded tools and the MCP server they are registered on.
type Server struct {
	set         *tools.Set
	mcp         *mcp.Server
	handler     slog.Handler
	logger      *slog.Logger
	version     string
	middlewares []supervisorHTTP.HandlerFunc
	timeouts    httpserver.Timeouts
}

// Option configures a Server.
type Option func(*Server)

func WithLogHandler(handler slog.Handler) Option {
	return func(s *Server) {
		if handler != nil {
			s.handler = handler
		}
	}
}

// WithVersion sets the version reported during MCP initialization.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMiddlewares wraps the HTTP route used by Run.
func WithMiddlewares(mw ...supervisorHTTP.HandlerFunc) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, mw...)
	}
}

func WithTimeouts(t httpserver.Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t
	}
}

// New loads toolsPath and registers every tool on a fresh MCP server.
func New(toolsPath string, opts ...Option) (*Server, error) {
	s := &Server{
		handler: slog.Default().Handler(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = slog.New(s.handler).WithGroup("toolserver")

	set, err := tools.Load(toolsPath, tools.WithLogHandler(s.handler))
	if err != nil {
		return nil, err
	}
	s.set = set

	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: s.version},
		&mcp.ServerOptions{Logger: s.logger},
	)
	set.Register(s.mcp)
	return s, nil
}

// Tools returns the loaded tool set.
func (s *Server) Tools() *tools.Set {
	return s.set
}

// MCPServer returns the underlying MCP server, for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// AppOptions selects the transport HTTPApp mounts.
type AppOptions struct {
	Transport launch.Transport
	Stateless bool
}

// HTTPApp returns a handler serving MCP on the transport's path plus a
// health endpoint.
func (s *Server) HTTPApp(o AppOptions) (http.Handler, error) {
	getServer := func(*http.Request) *mcp.Server { return s.mcp }

	mux := http.NewServeMux()
	switch o.Transport {
	case launch.TransportStreamableHTTP:
		mux.Handle(StreamablePath, mcp.NewStreamableHTTPHandler(getServer,
			&mcp.StreamableHTTPOptions{Stateless: o.Stateless}))
	case launch.TransportSSE:
		mux.Handle(SSEPath, mcp.NewSSEHandler(getServer, nil))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransport, o.Transport)
	}
	mux.HandleFunc("GET "+HealthPath, s.health)
	return mux, nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"tools":  s.set.Len(),
	})
}

// RunOptions is the listen address and transport for Run.
type RunOptions struct {
	Transport launch.Transport
	Host      string
	Port      int
}

// Run serves a stateful HTTPApp on Host:Port until ctx is done.
func (s *Server) Run(ctx context.Context, o RunOptions) error {
	app, err := s.HTTPApp(AppOptions{Transport: o.Transport})
	if err != nil {
		return err
	}
	route, err := httpserver.NewRoute("mcp", "/", app, s.middlewares...)
	if err != nil {
		return err
	}
	addr := launch.LaunchConfig{Host: o.Host, Port: o.Port}.Addr()
	srv, err := httpserver.New("mcp-"+o.Transport.String(), addr, []supervisorHTTP.Route{route},
		httpserver.WithTimeouts(s.timeouts),
		httpserver.WithLogHandler(s.handler))
	if err != nil {
		return err
	}
	s.logger.Info("Serving MCP tools",
		"transport", o.Transport,
		"addr", addr,
		"tools", s.set.Len())
	return httpserver.Serve(ctx, s.handler, srv)
}
