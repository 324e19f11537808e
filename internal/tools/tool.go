package tools

import (
	"context"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind is how a tool is implemented.
type Kind string

const (
	KindRisor    Kind = "risor"
	KindStarlark Kind = "starlark"
	KindBuiltin  Kind = "builtin"
)

var toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

func validToolName(name string) bool {
	return toolNamePattern.MatchString(name)
}

// executor runs one call. Failures are reported as error results, never as Go errors.
type executor interface {
	execute(ctx context.Context, args map[string]any) *mcp.CallToolResult
}

// Tool is one loaded tool definition, ready to register on an MCP server.
type Tool struct {
	Name        string
	Description string
	Kind        Kind
	// Builtin is set when Kind is KindBuiltin.
	Builtin BuiltinKind
	// Source is the script or manifest the tool was loaded from.
	Source   string
	Manifest string
	Timeout  time.Duration
	Params   map[string]Param
	Required []string

	exec   executor
	logger *slog.Logger
}

// InputSchema builds the JSON Schema advertised for the tool's arguments.
func (t *Tool) InputSchema() *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "object"}
	if len(t.Params) > 0 {
		schema.Properties = make(map[string]*jsonschema.Schema, len(t.Params))
		for name, p := range t.Params {
			schema.Properties[name] = &jsonschema.Schema{Type: p.Type, Description: p.Description}
		}
	}
	if len(t.Required) > 0 {
		schema.Required = slices.Clone(t.Required)
	}
	return schema
}

// MCPTool returns the protocol description of the tool.
func (t *Tool) MCPTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema(),
	}
}

// Handler adapts the tool to the MCP server's raw tool handler.
func (t *Tool) Handler() mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw any
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArguments(raw)
		if err != nil {
			return errorResult("%v", err), nil
		}
		return t.Call(ctx, args), nil
	}
}

// Call runs the tool with already decoded arguments.
func (t *Tool) Call(ctx context.Context, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}
	start := time.Now()
	res := t.exec.execute(ctx, maps.Clone(args))
	t.logger.DebugContext(ctx, "Tool call finished",
		"tool", t.Name,
		"duration", time.Since(start),
		"isError", res.IsError)
	return res
}
