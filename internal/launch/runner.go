package launch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atlanticdynamic/mcplauncher/internal/httpserver"
	supervisorHTTP "github.com/robbyt/go-supervisor/runnables/httpserver"
)

var _ GenericRunner = (*SupervisorRunner)(nil)

// SupervisorRunner mounts an application at "/" and runs it under
// go-supervisor, which also handles SIGINT and SIGTERM.
type SupervisorRunner struct {
	handler     slog.Handler
	middlewares []supervisorHTTP.HandlerFunc
	timeouts    httpserver.Timeouts
}

// RunnerOption configures a SupervisorRunner.
type RunnerOption func(*SupervisorRunner)

func WithRunnerLogHandler(handler slog.Handler) RunnerOption {
	return func(r *SupervisorRunner) {
		if handler != nil {
			r.handler = handler
		}
	}
}

// WithRunnerMiddlewares wraps the application route, outermost first.
func WithRunnerMiddlewares(mw ...supervisorHTTP.HandlerFunc) RunnerOption {
	return func(r *SupervisorRunner) {
		r.middlewares = append(r.middlewares, mw...)
	}
}

func WithRunnerTimeouts(t httpserver.Timeouts) RunnerOption {
	return func(r *SupervisorRunner) {
		r.timeouts = t
	}
}

func NewSupervisorRunner(opts ...RunnerOption) *SupervisorRunner {
	r := &SupervisorRunner{handler: slog.Default().Handler()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Serve blocks until ctx is cancelled, a signal arrives, or the listener fails.
func (r *SupervisorRunner) Serve(ctx context.Context, app http.Handler, host string, port int) error {
	route, err := httpserver.NewRoute("app", "/", app, r.middlewares...)
	if err != nil {
		return err
	}
	addr := LaunchConfig{Host: host, Port: port}.Addr()
	srv, err := httpserver.New("app", addr, []supervisorHTTP.Route{route},
		httpserver.WithTimeouts(r.timeouts),
		httpserver.WithLogHandler(r.handler))
	if err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return httpserver.Serve(ctx, r.handler, srv)
}
