package httpserver

import (
	"context"
	"net/http"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
)

type connWriterKey struct{}

// withConnWriter records the connection's own ResponseWriter on the request
// before go-supervisor wraps it for the middleware chain.
func withConnWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), connWriterKey{}, w)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// serverCreator builds the http.Server go-supervisor runs.
func serverCreator(addr string, handler http.Handler, cfg *httpserver.Config) httpserver.HttpServer {
	return httpserver.DefaultServerCreator(addr, withConnWriter(handler), cfg)
}

// streamWriter adds flushing and unwrapping to the go-supervisor response
// writer. SSE and streamable HTTP responses need both.
type streamWriter struct {
	httpserver.ResponseWriter
	conn http.ResponseWriter
}

// FlushError sends buffered data to the client.
func (w *streamWriter) FlushError() error {
	if !w.Written() {
		w.WriteHeader(http.StatusOK)
	}
	return http.NewResponseController(w.conn).Flush()
}

func (w *streamWriter) Flush() {
	_ = w.FlushError()
}

func (w *streamWriter) Unwrap() http.ResponseWriter {
	return w.conn
}

// Streaming replaces the route's writer with one that can flush. It is a
// no-op for routes served outside a Server.
func Streaming(rp *httpserver.RequestProcessor) {
	if conn, ok := rp.Request().Context().Value(connWriterKey{}).(http.ResponseWriter); ok {
		rp.SetWriter(&streamWriter{ResponseWriter: rp.Writer(), conn: conn})
	}
	rp.Next()
}
