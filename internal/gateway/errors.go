package gateway

import "errors"

var (
	ErrConfigNotFound = errors.New("mcp.json not found")
	ErrInvalidJSON    = errors.New("invalid JSON in mcp.json")
	ErrNoServers      = errors.New("mcp.json contains no servers under `mcpServers`")
	ErrInvalidName    = errors.New("invalid server name")
	ErrDuplicateName  = errors.New("duplicate server name")
	ErrEmptyCommand   = errors.New("server command is empty")
	ErrUpstreamStart  = errors.New("failed to start upstream MCP server")
)
