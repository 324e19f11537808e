package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// bridge re-exposes the tools of one upstream session on a local server.
type bridge struct {
	name    string
	session *mcp.ClientSession
	server  *mcp.Server
	tools   int
}

func startBridge(ctx context.Context, up Upstream, version string, logger *slog.Logger) (*bridge, error) {
	cmd := exec.Command(up.Command, up.Args...)
	cmd.Env = up.environ()
	cmd.Stderr = os.Stderr
	b, err := connectBridge(ctx, up.Name, &mcp.CommandTransport{Command: cmd}, version, logger)
	if err != nil {
		return nil, fmt.Errorf("%w %s (%s): %w", ErrUpstreamStart, up.Name, up.CommandString(), err)
	}
	return b, nil
}

func connectBridge(ctx context.Context, name string, t mcp.Transport, version string, logger *slog.Logger) (*bridge, error) {
	c := mcp.NewClient(&mcp.Implementation{Name: "mcplauncher-gateway", Version: version}, nil)
	session, err := c.Connect(ctx, t, nil)
	if err != nil {
		return nil, err
	}

	b := &bridge{
		name:    name,
		session: session,
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version},
			&mcp.ServerOptions{Logger: logger}),
	}
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			_ = session.Close()
			return nil, fmt.Errorf("list tools: %w", err)
		}
		if tool.InputSchema == nil {
			tool.InputSchema = &jsonschema.Schema{Type: "object"}
		}
		b.server.AddTool(tool, b.forward)
		b.tools++
	}
	logger.Info("Upstream connected", "upstream", name, "tools", b.tools)
	return b, nil
}

func (b *bridge) forward(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return b.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      req.Params.Name,
		Arguments: req.Params.Arguments,
	})
}

func (b *bridge) close() error {
	return b.session.Close()
}
