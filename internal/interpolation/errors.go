package interpolation

import "errors"

var (
	ErrUndefinedVariable = errors.New("environment variable not defined")
	ErrNotStruct         = errors.New("expected struct or pointer to struct")
)
