package tools

import (
	"encoding/json"
	"fmt"
)

// decodeArguments normalizes call arguments into a map. The MCP server hands
// them over as raw JSON, but already decoded maps are accepted too.
func decodeArguments(raw any) (map[string]any, error) {
	var payload []byte
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if v == nil {
			return map[string]any{}, nil
		}
		return v, nil
	case json.RawMessage:
		payload = v
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		}
		payload = b
	}

	if len(payload) == 0 || string(payload) == "null" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(payload, &args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
