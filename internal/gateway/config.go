package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "mcp.json"

const exampleConfig = `{
  "mcpServers": {
    "server-name": {
      "command": "npx",
      "args": ["-y", "mcp-server"],
      "env": { "API_KEY": "value" }
    }
  }
}`

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

type serverEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

type configFile struct {
	MCPServers map[string]serverEntry `json:"mcpServers"`
}

// Upstream is one stdio MCP server the gateway starts and re-exposes.
type Upstream struct {
	Name    string
	Command string
	Args    []string
	Env     map[string]string
}

// CommandString is the command and its arguments joined by spaces.
func (u Upstream) CommandString() string {
	return strings.Join(append([]string{u.Command}, u.Args...), " ")
}

// SSEPath is where the upstream is mounted.
func (u Upstream) SSEPath() string {
	return "/" + u.Name + "/sse"
}

// environ returns the parent environment with u.Env applied on top.
func (u Upstream) environ() []string {
	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(u.Env)) {
		env = append(env, k+"="+u.Env[k])
	}
	return env
}

// LoadConfig reads an mcp.json file. Server names are lowercased and the
// result is sorted by name.
func LoadConfig(path string) ([]Upstream, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s. Create one with the format:\n%s", ErrConfigNotFound, path, exampleConfig)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseConfig(raw)
}

// ParseConfig decodes mcp.json content.
func ParseConfig(raw []byte) ([]Upstream, error) {
	var cfg configFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(cfg.MCPServers) == 0 {
		return nil, ErrNoServers
	}

	var errs []error
	seen := make(map[string]string, len(cfg.MCPServers))
	out := make([]Upstream, 0, len(cfg.MCPServers))
	for _, key := range slices.Sorted(maps.Keys(cfg.MCPServers)) {
		entry := cfg.MCPServers[key]
		name := strings.ToLower(key)
		if !validName.MatchString(name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidName, key))
			continue
		}
		if prev, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q and %q", ErrDuplicateName, prev, key))
			continue
		}
		seen[name] = key
		if strings.TrimSpace(entry.Command) == "" {
			errs = append(errs, fmt.Errorf("%s: %w", key, ErrEmptyCommand))
			continue
		}
		out = append(out, Upstream{
			Name:    name,
			Command: entry.Command,
			Args:    entry.Args,
			Env:     entry.Env,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	slices.SortFunc(out, func(a, b Upstream) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
