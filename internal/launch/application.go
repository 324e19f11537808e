package launch

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
)

// Application is an http.Handler whose MCP application is built by Load.
// Creating one does no I/O, so it can be assigned at package scope; Start
// and the first request both call Load.
type Application struct {
	launcher *Launcher
	cfg      LaunchConfig

	once    sync.Once
	handler http.Handler
	err     error
}

var _ http.Handler = (*Application)(nil)

// NewApplication returns a lazy application for cfg.
func NewApplication(l *Launcher, cfg LaunchConfig) *Application {
	return &Application{launcher: l, cfg: cfg}
}

// Config returns the launch configuration the application was created with.
func (a *Application) Config() LaunchConfig {
	return a.cfg
}

// Load builds the application if it has not been built yet and reports the
// build error, if any. Later calls return the first result.
func (a *Application) Load(ctx context.Context) error {
	a.once.Do(func() {
		a.handler, a.err = a.launcher.BuildApplication(ctx, a.cfg)
	})
	return a.err
}

func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := a.Load(r.Context()); err != nil {
		a.launcher.logger.ErrorContext(r.Context(), "Application unavailable", "error", err)
		http.Error(w, "application unavailable", http.StatusServiceUnavailable)
		return
	}
	a.handler.ServeHTTP(w, r)
}

// LogValue summarizes the application for structured logs.
func (a *Application) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tools", a.cfg.ToolsPath),
		slog.String("transport", a.cfg.Transport.String()),
		slog.String("addr", a.cfg.Addr()),
	)
}
