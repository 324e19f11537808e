// Package logging builds the slog handlers used by the launcher binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/atlanticdynamic/mcplauncher/internal/logging/writers"
)

// Format selects the handler implementation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options describes a handler built by NewHandler.
type Options struct {
	Level  string
	Format Format
	// Output is a destination understood by writers.CreateWriter.
	Output string
}

// NewHandler resolves the output writer and returns a text or JSON handler.
func NewHandler(opts Options) (slog.Handler, error) {
	w, err := writers.CreateWriter(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	switch Format(strings.ToLower(string(opts.Format))) {
	case "", FormatText:
		return SetupHandlerText(opts.Level, w), nil
	case FormatJSON:
		return SetupHandlerJSON(opts.Level, w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}
}

// SetupHandlerText configures a charmbracelet text handler with the provided writer and log level
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON slog handler with the provided writer and log level
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     ParseLevel(logLevel),
		AddSource: strings.EqualFold(logLevel, "trace"),
	})
}

// ParseLevel maps a level name onto slog levels. Unknown names are info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Environment variables read by HandlerFromEnv.
const (
	EnvLevel  = "LOG_LEVEL"
	EnvFormat = "LOG_FORMAT"
	EnvOutput = "LOG_OUTPUT"
)

// HandlerFromEnv builds a handler from LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
// Invalid settings fall back to an info level text handler on stderr, and
// the problem is logged through it.
func HandlerFromEnv() slog.Handler {
	h, err := NewHandler(Options{
		Level:  os.Getenv(EnvLevel),
		Format: Format(os.Getenv(EnvFormat)),
		Output: os.Getenv(EnvOutput),
	})
	if err != nil {
		h = SetupHandlerText("info", os.Stderr)
		slog.New(h).Warn("Ignoring log settings from environment", "error", err)
	}
	return h
}
