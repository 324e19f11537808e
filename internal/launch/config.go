// Package launch starts an MCP tool server from a LaunchConfig, either by
// handing the parameters to a blocking runner or by building an HTTP
// application and serving it through a generic runner.
package launch

import (
	"net"
	"strconv"
)

// Transport selects the MCP HTTP transport.
type Transport string

const (
	TransportStreamableHTTP Transport = "streamable-http"
	TransportSSE            Transport = "sse"
)

func (t Transport) String() string {
	return string(t)
}

// LaunchConfig is the full set of launch parameters. Values are passed to the
// collaborators as given; nothing here is validated.
type LaunchConfig struct {
	ToolsPath string    `toml:"tools" env_interpolation:"yes"`
	Transport Transport `toml:"transport"`
	Host      string    `toml:"host" env_interpolation:"yes"`
	Port      int       `toml:"port"`
}

// VariantA serves ./example_tools over streamable HTTP on port 8000.
func VariantA() LaunchConfig {
	return LaunchConfig{
		ToolsPath: "./example_tools",
		Transport: TransportStreamableHTTP,
		Host:      "0.0.0.0",
		Port:      8000,
	}
}

// VariantB serves ./tools over SSE on port 8080.
func VariantB() LaunchConfig {
	return LaunchConfig{
		ToolsPath: "./tools",
		Transport: TransportSSE,
		Host:      "0.0.0.0",
		Port:      8080,
	}
}

// Variant returns the named built-in configuration, "a" or "b".
func Variant(name string) (LaunchConfig, bool) {
	switch name {
	case "a", "A":
		return VariantA(), true
	case "b", "B":
		return VariantB(), true
	default:
		return LaunchConfig{}, false
	}
}

// Addr joins host and port. The port is formatted as is, out of range or not.
func (c LaunchConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AppRequest is what an ApplicationFactory receives.
type AppRequest struct {
	ToolsPath string
	Transport Transport
	Stateless bool
}

// RunRequest is what a BlockingRunner receives.
type RunRequest struct {
	ToolsPath string
	Transport Transport
	Host      string
	Port      int
}
