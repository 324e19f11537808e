// Package config reads the optional TOML launch file.
//
//	variant = "a"
//
//	[launch]
//	tools = "${TOOLS_DIR:./example_tools}"
//	transport = "streamable-http"
//	host = "0.0.0.0"
//	port = 8000
//
//	[http]
//	read_timeout = "30s"
//	drain_timeout = "5s"
//
//	[http.response_headers.set]
//	"X-Content-Type-Options" = "nosniff"
//
// Values left out of [launch] come from the variant.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/atlanticdynamic/mcplauncher/internal/httpserver"
	"github.com/atlanticdynamic/mcplauncher/internal/httpserver/middleware"
	"github.com/atlanticdynamic/mcplauncher/internal/interpolation"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
)

// DefaultVariant is used when neither the file nor a flag names one.
const DefaultVariant = "a"

// File is the decoded launch file.
type File struct {
	Variant string              `toml:"variant"`
	Launch  launch.LaunchConfig `toml:"launch" env_interpolation:"yes"`
	HTTP    HTTP                `toml:"http" env_interpolation:"yes"`
}

// HTTP configures the listener and response middleware.
type HTTP struct {
	ReadTimeout     Duration                   `toml:"read_timeout"`
	// WriteTimeout of zero disables the write deadline.
	WriteTimeout    Duration                   `toml:"write_timeout"`
	IdleTimeout     Duration                   `toml:"idle_timeout"`
	DrainTimeout    Duration                   `toml:"drain_timeout"`
	ResponseHeaders middleware.ResponseHeaders `toml:"response_headers" env_interpolation:"yes"`
}

// Timeouts converts the section for the HTTP server.
func (h HTTP) Timeouts() httpserver.Timeouts {
	return httpserver.Timeouts{
		Read:  h.ReadTimeout.AsDuration(),
		Write: h.WriteTimeout.AsDuration(),
		Idle:  h.IdleTimeout.AsDuration(),
		Drain: h.DrainTimeout.AsDuration(),
	}
}

// Load reads, interpolates and validates the file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	return Parse(raw)
}

// Parse decodes file content. Unknown keys are rejected.
func Parse(raw []byte) (*File, error) {
	f := &File{}
	dec := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrParseConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	if err := interpolation.InterpolateStruct(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterpolation, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the variant and the http section. Host, port and transport
// are not checked here.
func (f *File) Validate() error {
	var errs []error
	if f.Variant != "" {
		if _, ok := launch.Variant(f.Variant); !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownVariant, f.Variant))
		}
	}
	for name, d := range map[string]Duration{
		"read_timeout":  f.HTTP.ReadTimeout,
		"write_timeout": f.HTTP.WriteTimeout,
		"idle_timeout":  f.HTTP.IdleTimeout,
		"drain_timeout": f.HTTP.DrainTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("http.%s: %w", name, ErrNegativeTimeout))
		}
	}
	if err := f.HTTP.ResponseHeaders.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("http.response_headers: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
	}
	return nil
}

// Overrides are command line values. Empty strings and a nil Port mean unset.
type Overrides struct {
	Variant   string
	ToolsPath string
	Transport string
	Host      string
	Port      *int
}

// Resolve layers the variant, then the file (may be nil), then the overrides.
func Resolve(f *File, o Overrides) (launch.LaunchConfig, error) {
	name := DefaultVariant
	if f != nil && f.Variant != "" {
		name = f.Variant
	}
	if o.Variant != "" {
		name = o.Variant
	}
	cfg, ok := launch.Variant(name)
	if !ok {
		return launch.LaunchConfig{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}

	if f != nil {
		cfg = merge(cfg, f.Launch)
	}
	over := launch.LaunchConfig{
		ToolsPath: o.ToolsPath,
		Transport: launch.Transport(o.Transport),
		Host:      o.Host,
	}
	cfg = merge(cfg, over)
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	return cfg, nil
}

func merge(base, top launch.LaunchConfig) launch.LaunchConfig {
	if top.ToolsPath != "" {
		base.ToolsPath = top.ToolsPath
	}
	if top.Transport != "" {
		base.Transport = top.Transport
	}
	if top.Host != "" {
		base.Host = top.Host
	}
	if top.Port != 0 {
		base.Port = top.Port
	}
	return base
}
