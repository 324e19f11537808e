// Package tools loads a directory of tool definitions (Risor and Starlark
// scripts, TOML manifests, and builtins) and exposes them as MCP tools.
package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var scriptExtensions = map[string]Kind{
	".risor": KindRisor,
	".star":  KindStarlark,
}

const manifestExtension = ".toml"

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logHandler slog.Handler
}

// WithLogHandler sets the handler for load and call logs.
func WithLogHandler(handler slog.Handler) Option {
	return func(o *loadOptions) {
		o.logHandler = handler
	}
}

// Set is the collection of tools loaded from one directory.
type Set struct {
	dir    string
	tools  []*Tool
	byName map[string]*Tool
}

// definition groups the files sharing one base name.
type definition struct {
	base     string
	script   string
	kind     Kind
	manifest string
}

// Load scans dir, non-recursively, and compiles every tool it defines.
// All per-tool failures are reported together.
func Load(dir string, opts ...Option) (*Set, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logHandler == nil {
		o.logHandler = slog.Default().Handler()
	}
	logger := slog.New(o.logHandler).WithGroup("tools").With("dir", dir)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrToolsDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrToolsDirectory, dir)
	}

	defs, errs := scanDirectory(dir, logger)

	set := &Set{dir: dir, byName: make(map[string]*Tool)}
	for _, def := range defs {
		tool, err := buildTool(def, o.logHandler, logger)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", def.base, err))
			continue
		}
		if prev, dup := set.byName[tool.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %s defined by %s and %s",
				ErrDuplicateTool, tool.Name, prev.Source, tool.Source))
			continue
		}
		set.byName[tool.Name] = tool
		set.tools = append(set.tools, tool)
		logger.Debug("Loaded tool", "tool", tool.Name, "kind", tool.Kind, "source", tool.Source)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			logger.Error("Tool definition rejected", "error", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrToolLoad, errors.Join(errs...))
	}

	slices.SortFunc(set.tools, func(a, b *Tool) int { return strings.Compare(a.Name, b.Name) })
	if len(set.tools) == 0 {
		logger.Warn("Tools directory defines no tools")
	} else {
		logger.Info("Tools loaded", "count", len(set.tools))
	}
	return set, nil
}

func scanDirectory(dir string, logger *slog.Logger) ([]*definition, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("%w: %w", ErrToolsDirectory, err)}
	}

	var errs []error
	byBase := make(map[string]*definition)
	var order []string
	lookup := func(base string) *definition {
		def, ok := byBase[base]
		if !ok {
			def = &definition{base: base}
			byBase[base] = def
			order = append(order, base)
		}
		return def
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			logger.Debug("Skipping entry", "name", name)
			continue
		}
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		path := filepath.Join(dir, name)

		if kind, ok := scriptExtensions[ext]; ok {
			def := lookup(base)
			if def.script != "" {
				errs = append(errs, fmt.Errorf("%w: %s and %s",
					ErrDuplicateScriptForName, def.script, path))
				continue
			}
			def.script, def.kind = path, kind
			continue
		}
		if ext == manifestExtension {
			lookup(base).manifest = path
			continue
		}
		logger.Debug("Ignoring file", "name", name)
	}

	defs := make([]*definition, 0, len(order))
	for _, base := range order {
		defs = append(defs, byBase[base])
	}
	return defs, errs
}

func buildTool(def *definition, handler slog.Handler, logger *slog.Logger) (*Tool, error) {
	m := &Manifest{}
	if def.manifest != "" {
		parsed, err := readManifest(def.manifest)
		if err != nil {
			return nil, err
		}
		if err := parsed.Validate(); err != nil {
			return nil, err
		}
		m = parsed
	}

	name := def.base
	if m.Name != "" {
		name = m.Name
	}
	if !validToolName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidToolName, name)
	}

	tool := &Tool{
		Name:        name,
		Description: m.Description,
		Manifest:    def.manifest,
		Timeout:     m.timeout(),
		Params:      m.Params,
		Required:    m.Required,
		logger:      logger.With("tool", name),
	}

	switch {
	case def.script != "" && m.Builtin != "":
		return nil, ErrConflictingDefinition
	case def.script != "":
		ev, err := compileScript(def.kind, def.script, handler)
		if err != nil {
			return nil, err
		}
		tool.Kind = def.kind
		tool.Source = def.script
		tool.exec = &scriptExecutor{
			eval:    ev,
			data:    m.Data,
			timeout: tool.Timeout,
			logger:  tool.logger,
		}
		if tool.Description == "" {
			tool.Description = fmt.Sprintf("%s script %s", def.kind, filepath.Base(def.script))
		}
	case m.Builtin != "":
		kind := BuiltinKind(m.Builtin)
		exec, err := newBuiltin(kind, m.Config)
		if err != nil {
			return nil, err
		}
		tool.Kind = KindBuiltin
		tool.Builtin = kind
		tool.Source = def.manifest
		tool.exec = exec
		defaults := builtinDefaults[kind]
		if tool.Description == "" {
			tool.Description = defaults.description
		}
		if len(tool.Params) == 0 {
			tool.Params = defaults.params
		}
		if len(tool.Required) == 0 {
			tool.Required = defaults.required
		}
	default:
		return nil, ErrMissingBuiltin
	}

	return tool, nil
}

// Dir returns the directory the set was loaded from.
func (s *Set) Dir() string {
	return s.dir
}

// Len returns the number of tools.
func (s *Set) Len() int {
	return len(s.tools)
}

// All returns the tools sorted by name.
func (s *Set) All() []*Tool {
	return slices.Clone(s.tools)
}

// Get looks a tool up by name.
func (s *Set) Get(name string) (*Tool, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Register adds every tool to srv.
func (s *Set) Register(srv *mcp.Server) {
	for _, t := range s.tools {
		srv.AddTool(t.MCPTool(), t.Handler())
	}
}
