// Package middleware holds the go-supervisor middlewares used on MCP routes.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

// RequestIDHeader carries the per-request id. A client supplied value is kept.
const RequestIDHeader = "X-Request-Id"

// AccessLog logs one line per request and tags the response with a request id.
// 5xx responses log at error level, 4xx at warn.
func AccessLog(handler slog.Handler) httpserver.HandlerFunc {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	logger := slog.New(handler).WithGroup("http")

	return func(rp *httpserver.RequestProcessor) {
		r := rp.Request()
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		rp.Writer().Header().Set(RequestIDHeader, id)

		rp.Next()

		status := rp.Writer().Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		logger.LogAttrs(r.Context(), level, "HTTP request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
