package launch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/atlanticdynamic/mcplauncher/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robbyt/go-loglater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisorRunner_Serve(t *testing.T) {
	port := testutil.GetRandomPort(t)
	app := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "path="+r.URL.Path)
	})

	r := NewSupervisorRunner(WithRunnerLogHandler(loglater.NewLogCollector(nil)))
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(ctx, app, "127.0.0.1", port) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/mcp", port)
	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "path=/mcp", body)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

type pingArgs struct {
	Text string `json:"text"`
}

func TestSupervisorRunner_ServeSSE(t *testing.T) {
	srv := mcp.NewServer(&mcp.Implementation{Name: "runner-test", Version: "v0"}, nil)
	mcp.AddTool(srv, &mcp.Tool{Name: "ping"},
		func(_ context.Context, _ *mcp.CallToolRequest, in pingArgs) (*mcp.CallToolResult, any, error) {
			return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "pong " + in.Text}}}, nil, nil
		})
	mux := http.NewServeMux()
	mux.Handle("/sse", mcp.NewSSEHandler(func(*http.Request) *mcp.Server { return srv }, nil))
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	port := testutil.GetRandomPort(t)
	r := NewSupervisorRunner(WithRunnerLogHandler(loglater.NewLogCollector(nil)))
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(ctx, mux, "127.0.0.1", port) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ready")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	callCtx, callCancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer callCancel()
	c := mcp.NewClient(&mcp.Implementation{Name: "runner-test-client", Version: "v0"}, nil)
	sess, err := c.Connect(callCtx, &mcp.SSEClientTransport{Endpoint: base + "/sse"}, nil)
	require.NoError(t, err)
	res, err := sess.CallTool(callCtx, &mcp.CallToolParams{Name: "ping", Arguments: map[string]any{"text": "sse"}})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "pong sse", text.Text)
	require.NoError(t, sess.Close())

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}
