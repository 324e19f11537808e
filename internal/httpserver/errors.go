package httpserver

import "errors"

var (
	ErrNoRoutes      = errors.New("http server needs at least one route")
	ErrCreateRunner  = errors.New("failed to create HTTP server runner")
	ErrInvalidConfig = errors.New("invalid HTTP server config")
	ErrInvalidRoute  = errors.New("invalid route")
)
