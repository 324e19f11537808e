package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	keyIsError = "isError"
	keyContent = "content"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(fmt.Sprintf(format, args...))
	res.IsError = true
	return res
}

// resultFromValue converts a script return value into a tool result.
// A map carrying isError or content follows the {"isError", "content"}
// envelope; any other map becomes JSON text plus structured content.
func resultFromValue(v any) *mcp.CallToolResult {
	switch val := v.(type) {
	case nil:
		return textResult("")
	case string:
		return textResult(val)
	case []byte:
		return textResult(string(val))
	case map[string]any:
		_, hasErr := val[keyIsError]
		content, hasContent := val[keyContent]
		if hasErr || hasContent {
			res := textResult(renderText(content))
			res.IsError = truthy(val[keyIsError])
			return res
		}
		res := textResult(renderText(val))
		res.StructuredContent = val
		return res
	default:
		return textResult(renderText(val))
	}
}

// renderText leaves strings alone and renders everything else as JSON,
// falling back to fmt for values JSON cannot encode.
func renderText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return false
	}
}
