package launch

import (
	"context"
	"os"
	"strings"
)

// ModeEnv names the environment variable read by ModeFromEnv.
const ModeEnv = "MCP_LAUNCH_MODE"

// Mode selects which serving path Start takes.
type Mode string

const (
	// ModeBlocking hands the parameters to the blocking runner.
	ModeBlocking Mode = "blocking"
	// ModeApp builds the application and serves it via the generic runner.
	ModeApp Mode = "app"
)

// ModeFromEnv reads ModeEnv. Anything other than "app" is ModeBlocking.
func ModeFromEnv() Mode {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(ModeEnv)), string(ModeApp)) {
		return ModeApp
	}
	return ModeBlocking
}

// Start builds the application, then launches its configuration in mode and
// blocks until the server stops. A build failure is returned before anything
// listens, whichever mode is selected.
func (a *Application) Start(ctx context.Context, mode Mode) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	if mode == ModeApp {
		return a.launcher.ServeViaGenericRunner(ctx, a, a.cfg)
	}
	return a.launcher.RunBlocking(ctx, a.cfg)
}
