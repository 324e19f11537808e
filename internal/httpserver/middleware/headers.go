package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	supervisorHeaders "github.com/robbyt/go-supervisor/runnables/httpserver/middleware/headers"
	"golang.org/x/net/http/httpguts"
)

var (
	ErrEmptyHeaderName   = errors.New("header name cannot be empty")
	ErrInvalidHeaderName = errors.New("invalid header name")
	ErrInvalidHeaderVal  = errors.New("invalid header value")
)

// ResponseHeaders lists response header operations. They run in the order
// remove, set, add.
type ResponseHeaders struct {
	Set    map[string]string `toml:"set" env_interpolation:"yes"`
	Add    map[string]string `toml:"add" env_interpolation:"yes"`
	Remove []string          `toml:"remove"`
}

// IsEmpty reports whether no operation is configured.
func (h *ResponseHeaders) IsEmpty() bool {
	return h == nil || (len(h.Set) == 0 && len(h.Add) == 0 && len(h.Remove) == 0)
}

// Validate checks every name and value against RFC 7230 token rules.
func (h *ResponseHeaders) Validate() error {
	if h == nil {
		return nil
	}
	var errs []error
	for k, v := range h.Set {
		if err := validateHeader(k, v); err != nil {
			errs = append(errs, fmt.Errorf("set %q: %w", k, err))
		}
	}
	for k, v := range h.Add {
		if err := validateHeader(k, v); err != nil {
			errs = append(errs, fmt.Errorf("add %q: %w", k, err))
		}
	}
	for _, k := range h.Remove {
		if strings.TrimSpace(k) == "" {
			errs = append(errs, fmt.Errorf("remove: %w", ErrEmptyHeaderName))
		}
	}
	return errors.Join(errs...)
}

func validateHeader(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyHeaderName
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return ErrInvalidHeaderName
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return ErrInvalidHeaderVal
	}
	return nil
}

// Headers builds the go-supervisor headers middleware for h. Call Validate first.
func Headers(h *ResponseHeaders) httpserver.HandlerFunc {
	var ops []supervisorHeaders.HeaderOperation
	if h != nil {
		if len(h.Remove) > 0 {
			ops = append(ops, supervisorHeaders.WithRemove(h.Remove...))
		}
		if len(h.Set) > 0 {
			ops = append(ops, supervisorHeaders.WithSet(toHeader(h.Set)))
		}
		if len(h.Add) > 0 {
			ops = append(ops, supervisorHeaders.WithAdd(toHeader(h.Add)))
		}
	}
	return supervisorHeaders.NewWithOperations(ops...)
}

func toHeader(m map[string]string) http.Header {
	out := make(http.Header, len(m))
	for k, v := range m {
		out.Set(k, v)
	}
	return out
}
