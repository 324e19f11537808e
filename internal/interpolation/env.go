// Package interpolation expands ${VAR} and ${VAR:default} references in config values.
package interpolation

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// group 2 captures the colon so "${VAR:}" means "default to empty"
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// ExpandEnvVars replaces every ${VAR} or ${VAR:default} in input. A reference
// with no default whose variable is unset stays in place and is reported as
// ErrUndefinedVariable.
func ExpandEnvVars(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	var errs []error
	out := envRefPattern.ReplaceAllStringFunc(input, func(ref string) string {
		m := envRefPattern.FindStringSubmatch(ref)
		name, hasDefault, def := m[1], m[2] == ":", m[3]

		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if hasDefault {
			return def
		}
		errs = append(errs, fmt.Errorf("%w: %s", ErrUndefinedVariable, name))
		return ref
	})

	return out, errors.Join(errs...)
}
