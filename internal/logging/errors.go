package logging

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown log format")
	ErrInvalidOutput = errors.New("invalid log output")
)
