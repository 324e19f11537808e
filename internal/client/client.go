// Package client is a thin MCP client used by the call command and tests.
// It hides the go-sdk transport types behind a transport name and a URL.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/atlanticdynamic/mcplauncher/internal/launch"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const clientName = "mcplauncher-client"

// Options configures Connect.
type Options struct {
	Transport  launch.Transport
	HTTPClient *http.Client
	Version    string
}

// Session is a connected MCP client session.
type Session struct {
	mu      sync.Mutex
	session *mcpsdk.ClientSession
}

// Tool is the part of a listed tool the CLI displays.
type Tool struct {
	Name        string
	Description string
}

// CallResult is a flattened tool result.
type CallResult struct {
	Text    []string
	IsError bool
}

// String joins the text parts with newlines.
func (r *CallResult) String() string {
	return strings.Join(r.Text, "\n")
}

// NewTransport returns the go-sdk client transport for t pointing at url.
func NewTransport(t launch.Transport, url string, httpClient *http.Client) (mcpsdk.Transport, error) {
	switch t {
	case launch.TransportStreamableHTTP:
		return &mcpsdk.StreamableClientTransport{Endpoint: url, HTTPClient: httpClient}, nil
	case launch.TransportSSE:
		return &mcpsdk.SSEClientTransport{Endpoint: url, HTTPClient: httpClient}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransport, t)
	}
}

// Connect opens a session to the server at url.
func Connect(ctx context.Context, url string, o Options) (*Session, error) {
	t, err := NewTransport(o.Transport, url, o.HTTPClient)
	if err != nil {
		return nil, err
	}
	return ConnectTransport(ctx, t, o.Version)
}

// ConnectTransport opens a session over an already built transport.
func ConnectTransport(ctx context.Context, t mcpsdk.Transport, version string) (*Session, error) {
	if version == "" {
		version = "dev"
	}
	c := mcpsdk.NewClient(&mcpsdk.Implementation{Name: clientName, Version: version}, nil)
	cs, err := c.Connect(ctx, t, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return &Session{session: cs}, nil
}

func (s *Session) current() (*mcpsdk.ClientSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, ErrSessionClosed
	}
	return s.session, nil
}

// ListTools returns every tool the server advertises, following pagination.
func (s *Session) ListTools(ctx context.Context) ([]Tool, error) {
	cs, err := s.current()
	if err != nil {
		return nil, err
	}
	var out []Tool
	for tool, err := range cs.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}
		out = append(out, Tool{Name: tool.Name, Description: tool.Description})
	}
	return out, nil
}

// CallTool invokes name with args. Non-text content is rendered as JSON.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*CallResult, error) {
	cs, err := s.current()
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}

	out := &CallResult{IsError: res.IsError}
	for _, c := range res.Content {
		switch v := c.(type) {
		case *mcpsdk.TextContent:
			out.Text = append(out.Text, v.Text)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("content %T: %w", v, err)
			}
			out.Text = append(out.Text, string(b))
		}
	}
	return out, nil
}

// Close ends the session. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session = nil
	return err
}
