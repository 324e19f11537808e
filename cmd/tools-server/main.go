// Command tools-server serves ./tools over SSE on 0.0.0.0:8080. Set
// MCP_LAUNCH_MODE=app to serve the prebuilt application through the generic
// HTTP runner instead of the blocking tool server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/mcplauncher/internal/httpserver/middleware"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
	"github.com/atlanticdynamic/mcplauncher/internal/logging"
	"github.com/atlanticdynamic/mcplauncher/internal/toolserver"
)

// version is set during build using ldflags
var version = "dev"

var (
	logHandler = logging.HandlerFromEnv()
	launcher   = toolserver.NewLauncher(
		toolserver.WithLogHandler(logHandler),
		toolserver.WithVersion(version),
		toolserver.WithMiddlewares(middleware.AccessLog(logHandler)),
	)

	// app opens nothing when declared. Start builds it before either mode listens.
	app = launch.NewApplication(launcher, launch.VariantB())
)

func main() {
	slog.SetDefault(slog.New(logHandler))
	if err := app.Start(context.Background(), launch.ModeFromEnv()); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
