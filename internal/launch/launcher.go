package launch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// ApplicationFactory builds a servable MCP application.
type ApplicationFactory interface {
	BuildApplication(ctx context.Context, req AppRequest) (http.Handler, error)
}

// BlockingRunner starts an MCP server and blocks until it stops.
type BlockingRunner interface {
	RunBlocking(ctx context.Context, req RunRequest) error
}

// GenericRunner serves any HTTP application on host:port until ctx is done.
type GenericRunner interface {
	Serve(ctx context.Context, app http.Handler, host string, port int) error
}

// Launcher connects a LaunchConfig to its collaborators.
type Launcher struct {
	factory ApplicationFactory
	runner  BlockingRunner
	generic GenericRunner
	logger  *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

func WithFactory(f ApplicationFactory) Option {
	return func(l *Launcher) {
		l.factory = f
	}
}

func WithBlockingRunner(r BlockingRunner) Option {
	return func(l *Launcher) {
		l.runner = r
	}
}

func WithGenericRunner(g GenericRunner) Option {
	return func(l *Launcher) {
		l.generic = g
	}
}

func WithLogHandler(handler slog.Handler) Option {
	return func(l *Launcher) {
		if handler != nil {
			l.logger = slog.New(handler).WithGroup("launch")
		}
	}
}

// New returns a Launcher. The generic runner defaults to a SupervisorRunner;
// the factory and blocking runner have no default.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		logger: slog.Default().WithGroup("launch"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.generic == nil {
		l.generic = NewSupervisorRunner(WithRunnerLogHandler(l.logger.Handler()))
	}
	return l
}

// BuildApplication asks the factory for a stateless application serving
// cfg.ToolsPath over cfg.Transport. No network resources are opened.
func (l *Launcher) BuildApplication(ctx context.Context, cfg LaunchConfig) (http.Handler, error) {
	if l.factory == nil {
		return nil, ErrNoFactory
	}
	app, err := l.factory.BuildApplication(ctx, AppRequest{
		ToolsPath: cfg.ToolsPath,
		Transport: cfg.Transport,
		Stateless: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildApp, err)
	}
	if app == nil {
		return nil, ErrNilApplication
	}
	l.logger.Debug("Application built", "tools", cfg.ToolsPath, "transport", cfg.Transport)
	return app, nil
}

// RunBlocking hands cfg to the blocking runner and returns when it stops.
func (l *Launcher) RunBlocking(ctx context.Context, cfg LaunchConfig) error {
	if l.runner == nil {
		return ErrNoRunner
	}
	l.logger.Info("Launching MCP server",
		"tools", cfg.ToolsPath,
		"transport", cfg.Transport,
		"host", cfg.Host,
		"port", cfg.Port)
	err := l.runner.RunBlocking(ctx, RunRequest{
		ToolsPath: cfg.ToolsPath,
		Transport: cfg.Transport,
		Host:      cfg.Host,
		Port:      cfg.Port,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRun, err)
	}
	return nil
}

// ServeViaGenericRunner serves app on cfg.Host and cfg.Port. Only the host
// and port of cfg are used.
func (l *Launcher) ServeViaGenericRunner(ctx context.Context, app http.Handler, cfg LaunchConfig) error {
	if l.generic == nil {
		return ErrNoGenericRunner
	}
	if app == nil {
		return ErrNilApplication
	}
	l.logger.Info("Serving application", "host", cfg.Host, "port", cfg.Port)
	if err := l.generic.Serve(ctx, app, cfg.Host, cfg.Port); err != nil {
		return fmt.Errorf("%w: %w", ErrRun, err)
	}
	return nil
}
