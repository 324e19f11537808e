package launch

import "errors"

var (
	ErrNoFactory       = errors.New("no application factory configured")
	ErrNoRunner        = errors.New("no blocking runner configured")
	ErrNoGenericRunner = errors.New("no generic runner configured")
	ErrBuildApp        = errors.New("failed to build application")
	ErrRun             = errors.New("server run failed")
	ErrNilApplication  = errors.New("factory returned a nil application")
)
