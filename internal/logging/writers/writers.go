// Package writers resolves log output destinations into io.Writers.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the destination class of an output destination.
type Kind string

const (
	KindStdout Kind = "stdout"
	KindStderr Kind = "stderr"
	KindFile   Kind = "file"
)

const filePrefix = "file://"

// CreateWriter returns the writer for an output destination:
//   - "" or "stderr" writes to os.Stderr, keeping stdout free for command output
//   - "stdout" writes to os.Stdout
//   - "file:///path/to/file" or "/path/to/file" appends to a file, creating parent directories
func CreateWriter(output string) (io.Writer, error) {
	switch ParseKind(output) {
	case KindStderr:
		return os.Stderr, nil
	case KindStdout:
		return os.Stdout, nil
	}

	if strings.Contains(output, "://") && !strings.HasPrefix(output, filePrefix) {
		return nil, fmt.Errorf("unsupported output scheme: %s", output)
	}
	path := strings.TrimPrefix(output, filePrefix)
	if !strings.ContainsAny(path, `/\`) {
		return nil, fmt.Errorf("unsupported output: %s", output)
	}
	return openFile(path)
}

// ParseKind classifies an output destination without opening anything.
func ParseKind(output string) Kind {
	switch output {
	case "", "stderr":
		return KindStderr
	case "stdout":
		return KindStdout
	default:
		return KindFile
	}
}

func openFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}
