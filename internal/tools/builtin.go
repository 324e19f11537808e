package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BuiltinKind names a tool implemented in Go rather than in a script.
type BuiltinKind string

const (
	BuiltinEcho        BuiltinKind = "echo"
	BuiltinCalculation BuiltinKind = "calculation"
	BuiltinFileRead    BuiltinKind = "file_read"
)

var builtinKinds = []BuiltinKind{BuiltinEcho, BuiltinCalculation, BuiltinFileRead}

// builtinDefaults holds the description and schema a builtin advertises when
// its manifest does not override them.
var builtinDefaults = map[BuiltinKind]struct {
	description string
	params      map[string]Param
	required    []string
}{
	BuiltinEcho: {
		description: "Echo the message argument back",
		params:      map[string]Param{"message": {Type: "string", Description: "text to echo"}},
	},
	BuiltinCalculation: {
		description: "Apply + - * or / to two numbers",
		params: map[string]Param{
			"a":  {Type: "number", Description: "left operand"},
			"b":  {Type: "number", Description: "right operand"},
			"op": {Type: "string", Description: "one of + - * /"},
		},
		required: []string{"a", "b", "op"},
	},
	BuiltinFileRead: {
		description: "Read a file below the configured base directory",
		params:      map[string]Param{"path": {Type: "string", Description: "path relative to the base directory"}},
		required:    []string{"path"},
	},
}

func newBuiltin(kind BuiltinKind, config map[string]string) (executor, error) {
	switch kind {
	case BuiltinEcho:
		return echoTool{}, nil
	case BuiltinCalculation:
		return calculationTool{}, nil
	case BuiltinFileRead:
		base := config["base_directory"]
		if base == "" {
			return nil, ErrMissingBaseDirectory
		}
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("base_directory: %w", err)
		}
		return fileReadTool{baseDir: abs}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltin, kind)
	}
}

type echoTool struct{}

func (echoTool) execute(_ context.Context, args map[string]any) *mcp.CallToolResult {
	if msg, ok := args["message"]; ok {
		return textResult(renderText(msg))
	}
	b, err := json.Marshal(args)
	if err != nil {
		return errorResult("failed to encode arguments: %v", err)
	}
	return textResult(string(b))
}

type calculationTool struct{}

func (calculationTool) execute(_ context.Context, args map[string]any) *mcp.CallToolResult {
	a, err := toFloat(args["a"])
	if err != nil {
		return errorResult("argument a: %v", err)
	}
	b, err := toFloat(args["b"])
	if err != nil {
		return errorResult("argument b: %v", err)
	}
	op, _ := args["op"].(string)

	var out float64
	switch strings.TrimSpace(op) {
	case "+":
		out = a + b
	case "-":
		out = a - b
	case "*":
		out = a * b
	case "/":
		if b == 0 {
			return errorResult("division by zero")
		}
		out = a / b
	default:
		return errorResult("unsupported operator %q", op)
	}
	return textResult(strconv.FormatFloat(out, 'f', -1, 64))
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case nil:
		return 0, fmt.Errorf("missing")
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

type fileReadTool struct {
	baseDir string
}

func (f fileReadTool) execute(_ context.Context, args map[string]any) *mcp.CallToolResult {
	rel, _ := args["path"].(string)
	if rel == "" {
		return errorResult("path argument required")
	}

	target := filepath.Join(f.baseDir, rel)
	inside, err := filepath.Rel(f.baseDir, target)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return errorResult("path %q escapes the base directory", rel)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return errorResult("failed to read %s: %v", rel, err)
	}
	return textResult(string(content))
}
