package tools

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/atlanticdynamic/mcplauncher/internal/interpolation"
)

// DefaultTimeout bounds a single tool call when the manifest sets none.
const DefaultTimeout = time.Minute

var paramTypes = []string{"string", "number", "integer", "boolean", "object", "array"}

// Manifest is the optional <name>.toml file next to a tool script, or the
// sole definition of a builtin tool.
//
//	description = "Reverse a string"
//	timeout = "5s"
//	required = ["text"]
//
//	[params.text]
//	type = "string"
//	description = "text to reverse"
//
//	[data]
//	max_length = 100
type Manifest struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description" env_interpolation:"yes"`
	Timeout     string            `toml:"timeout"`
	Builtin     string            `toml:"builtin"`
	Config      map[string]string `toml:"config" env_interpolation:"yes"`
	Data        map[string]any    `toml:"data"`
	Required    []string          `toml:"required"`
	Params      map[string]Param  `toml:"params"`
}

// Param describes one argument in the generated input schema.
type Param struct {
	Type        string `toml:"type"`
	Description string `toml:"description" env_interpolation:"yes"`
}

func readManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}
	return parseManifest(raw)
}

func parseManifest(raw []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := gotoml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}
	if err := interpolation.InterpolateStruct(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestInterpolation, err)
	}
	for name, p := range m.Params {
		if err := interpolation.InterpolateStruct(&p); err != nil {
			return nil, fmt.Errorf("%w: param %s: %w", ErrManifestInterpolation, name, err)
		}
		m.Params[name] = p
	}
	return m, nil
}

// Validate reports every problem in the manifest at once.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Timeout != "" {
		d, err := time.ParseDuration(m.Timeout)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidTimeout, err))
		case d < 0:
			errs = append(errs, fmt.Errorf("%w: %s is negative", ErrInvalidTimeout, m.Timeout))
		}
	}

	if m.Name != "" && !validToolName(m.Name) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidToolName, m.Name))
	}

	if m.Builtin != "" {
		if !slices.Contains(builtinKinds, BuiltinKind(m.Builtin)) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownBuiltin, m.Builtin))
		}
		if BuiltinKind(m.Builtin) == BuiltinFileRead && m.Config["base_directory"] == "" {
			errs = append(errs, ErrMissingBaseDirectory)
		}
	}

	for name, p := range m.Params {
		if p.Type != "" && !slices.Contains(paramTypes, p.Type) {
			errs = append(errs, fmt.Errorf("%w: %s has type %q", ErrInvalidParamType, name, p.Type))
		}
	}

	return errors.Join(errs...)
}

// timeout returns the parsed timeout or DefaultTimeout. Call after Validate.
func (m *Manifest) timeout() time.Duration {
	if m == nil || m.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil || d == 0 {
		return DefaultTimeout
	}
	return d
}
