// Package gateway starts the stdio MCP servers listed in an mcp.json file and
// serves each of them over SSE at /<name>/sse, next to the local tool server
// at /sse.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/atlanticdynamic/mcplauncher/internal/httpserver"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
	"github.com/atlanticdynamic/mcplauncher/internal/toolserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	supervisorHTTP "github.com/robbyt/go-supervisor/runnables/httpserver"
)

// DefaultPort is used when neither a flag nor PORT is set.
const DefaultPort = 8080

// Config describes what the gateway serves.
type Config struct {
	Upstreams []Upstream
	// ToolsPath is the local tools directory. Empty disables /sse.
	ToolsPath string
	Version   string
}

// Gateway owns the upstream sessions and the local tool server.
type Gateway struct {
	bridges     []*bridge
	local       *toolserver.Server
	handler     slog.Handler
	logger      *slog.Logger
	middlewares []supervisorHTTP.HandlerFunc

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Gateway.
type Option func(*Gateway)

func WithLogHandler(handler slog.Handler) Option {
	return func(g *Gateway) {
		if handler != nil {
			g.handler = handler
		}
	}
}

func WithMiddlewares(mw ...supervisorHTTP.HandlerFunc) Option {
	return func(g *Gateway) {
		g.middlewares = append(g.middlewares, mw...)
	}
}

// New loads the local tools and starts every upstream. If any upstream fails
// the ones already started are closed.
func New(ctx context.Context, cfg Config, opts ...Option) (*Gateway, error) {
	g := &Gateway{handler: slog.Default().Handler()}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = slog.New(g.handler).WithGroup("gateway")
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	if cfg.ToolsPath != "" {
		local, err := toolserver.New(cfg.ToolsPath,
			toolserver.WithLogHandler(g.handler),
			toolserver.WithVersion(cfg.Version))
		if err != nil {
			return nil, err
		}
		g.local = local
	}

	for _, up := range cfg.Upstreams {
		g.logger.Info("Starting upstream", "upstream", up.Name, "command", up.CommandString())
		b, err := startBridge(ctx, up, cfg.Version, g.logger)
		if err != nil {
			return nil, errors.Join(err, g.Close())
		}
		g.bridges = append(g.bridges, b)
	}
	return g, nil
}

// Handler returns the gateway routes.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	if g.local != nil {
		local := g.local.MCPServer()
		mux.Handle(toolserver.SSEPath, mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return local }, nil))
	}
	for _, b := range g.bridges {
		srv := b.server
		mux.Handle("/"+b.name+"/sse", mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return srv }, nil))
	}
	mux.HandleFunc("GET /{$}", g.info)
	return mux
}

type localInfo struct {
	SSE         string `json:"sse"`
	Description string `json:"description"`
}

type serverInfo struct {
	Name string `json:"name"`
	SSE  string `json:"sse"`
}

type infoResponse struct {
	Status     string       `json:"status"`
	LocalTools *localInfo   `json:"localTools,omitempty"`
	Servers    []serverInfo `json:"servers"`
}

func (g *Gateway) info(w http.ResponseWriter, _ *http.Request) {
	resp := infoResponse{Status: "ok", Servers: make([]serverInfo, 0, len(g.bridges))}
	if g.local != nil {
		resp.LocalTools = &localInfo{SSE: toolserver.SSEPath, Description: "Local MCP tools"}
	}
	for _, b := range g.bridges {
		resp.Servers = append(resp.Servers, serverInfo{Name: b.name, SSE: "/" + b.name + "/sse"})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Run serves the gateway on host:port until ctx is done, then closes the
// upstreams.
func (g *Gateway) Run(ctx context.Context, host string, port int) error {
	defer func() { _ = g.Close() }()

	route, err := httpserver.NewRoute("gateway", "/", g.Handler(), g.middlewares...)
	if err != nil {
		return err
	}
	addr := launch.LaunchConfig{Host: host, Port: port}.Addr()
	srv, err := httpserver.New("gateway", addr, []supervisorHTTP.Route{route},
		httpserver.WithLogHandler(g.handler))
	if err != nil {
		return err
	}
	for _, b := range g.bridges {
		g.logger.Info("Upstream mounted", "upstream", b.name, "sse", "/"+b.name+"/sse")
	}
	g.logger.Info("Gateway listening", "addr", addr, "upstreams", len(g.bridges))
	return httpserver.Serve(ctx, g.handler, srv)
}

// Close ends every upstream session, which stops the subprocesses.
func (g *Gateway) Close() error {
	g.closeOnce.Do(func() {
		var errs []error
		for _, b := range g.bridges {
			if err := b.close(); err != nil {
				errs = append(errs, err)
			}
		}
		g.closeErr = errors.Join(errs...)
	})
	return g.closeErr
}
