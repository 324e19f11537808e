package config

import "errors"

var (
	ErrReadConfig      = errors.New("failed to read config file")
	ErrParseConfig     = errors.New("failed to parse config file")
	ErrInterpolation   = errors.New("failed to interpolate config values")
	ErrValidation      = errors.New("invalid config")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrNegativeTimeout = errors.New("timeout cannot be negative")
)
