package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/logging"
)

// setupLogging installs the handler described by the global flags as the
// slog default.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	h, err := logging.NewHandler(logging.Options{
		Level:  cmd.String("log-level"),
		Format: logging.Format(cmd.String("log-format")),
		Output: cmd.String("log-output"),
	})
	if err != nil {
		return ctx, cli.Exit(err, 1)
	}
	slog.SetDefault(slog.New(h))
	return ctx, nil
}
