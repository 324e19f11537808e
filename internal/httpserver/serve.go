package httpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-supervisor/supervisor"
)

// Serve runs the given runnables under a go-supervisor instance until ctx is
// cancelled, a signal arrives, or a runnable fails.
func Serve(ctx context.Context, handler slog.Handler, runnables ...supervisor.Runnable) error {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	super, err := supervisor.New(
		supervisor.WithRunnables(runnables...),
		supervisor.WithLogHandler(handler),
		supervisor.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	return super.Run()
}
