package toolserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atlanticdynamic/mcplauncher/internal/launch"
)

var (
	_ launch.ApplicationFactory = (*Factory)(nil)
	_ launch.BlockingRunner     = (*Runner)(nil)
)

// Factory builds tool server applications for a Launcher.
type Factory struct {
	opts []Option
}

func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) BuildApplication(_ context.Context, req launch.AppRequest) (http.Handler, error) {
	s, err := New(req.ToolsPath, f.opts...)
	if err != nil {
		return nil, err
	}
	return s.HTTPApp(AppOptions{Transport: req.Transport, Stateless: req.Stateless})
}

// Runner starts a tool server for a Launcher and blocks until it stops.
type Runner struct {
	opts []Option
}

func NewRunner(opts ...Option) *Runner {
	return &Runner{opts: opts}
}

func (r *Runner) RunBlocking(ctx context.Context, req launch.RunRequest) error {
	s, err := New(req.ToolsPath, r.opts...)
	if err != nil {
		return err
	}
	return s.Run(ctx, RunOptions{Transport: req.Transport, Host: req.Host, Port: req.Port})
}

// NewLauncher returns a launch.Launcher whose factory, blocking runner and
// generic runner all share opts. Middlewares and timeouts apply to both
// serving paths.
func NewLauncher(opts ...Option) *launch.Launcher {
	s := &Server{handler: slog.Default().Handler()}
	for _, opt := range opts {
		opt(s)
	}
	return launch.New(
		launch.WithFactory(NewFactory(opts...)),
		launch.WithBlockingRunner(NewRunner(opts...)),
		launch.WithGenericRunner(launch.NewSupervisorRunner(
			launch.WithRunnerLogHandler(s.handler),
			launch.WithRunnerMiddlewares(s.middlewares...),
			launch.WithRunnerTimeouts(s.timeouts),
		)),
		launch.WithLogHandler(s.handler),
	)
}
