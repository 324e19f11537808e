package client

import "errors"

var (
	ErrUnsupportedTransport = errors.New("unsupported transport")
	ErrConnect              = errors.New("failed to connect to MCP server")
	ErrSessionClosed        = errors.New("MCP session is closed")
)
