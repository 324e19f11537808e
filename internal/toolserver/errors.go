package toolserver

import (
	"errors"

	"github.com/atlanticdynamic/mcplauncher/internal/tools"
)

var (
	ErrToolsDirectory       = tools.ErrToolsDirectory
	ErrToolLoad             = tools.ErrToolLoad
	ErrUnsupportedTransport = errors.New("unsupported transport")
)
