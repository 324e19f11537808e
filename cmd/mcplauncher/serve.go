package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-supervisor/runnables/httpserver"
	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/config"
	"github.com/atlanticdynamic/mcplauncher/internal/httpserver/middleware"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
	"github.com/atlanticdynamic/mcplauncher/internal/toolserver"
)

func launchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a TOML launch file",
		},
		&cli.StringFlag{
			Name:  "variant",
			Usage: "Built-in launch configuration: a (./example_tools, streamable-http, :8000) or b (./tools, sse, :8080)",
		},
		&cli.StringFlag{
			Name:  "tools",
			Usage: "Tools directory",
		},
		&cli.StringFlag{
			Name:  "transport",
			Usage: "MCP transport (streamable-http, sse)",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Listen host",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Listen port",
		},
	}
}

// resolveLaunch layers the variant, the optional launch file and the flags.
func resolveLaunch(cmd *cli.Command) (launch.LaunchConfig, *config.File, error) {
	var file *config.File
	if path := cmd.String("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return launch.LaunchConfig{}, nil, err
		}
		file = f
	}

	over := config.Overrides{
		Variant:   cmd.String("variant"),
		ToolsPath: cmd.String("tools"),
		Transport: cmd.String("transport"),
		Host:      cmd.String("host"),
	}
	if cmd.IsSet("port") {
		port := cmd.Int("port")
		over.Port = &port
	}
	cfg, err := config.Resolve(file, over)
	if err != nil {
		return launch.LaunchConfig{}, nil, err
	}
	return cfg, file, nil
}

// newLauncher wires the tool server into a launcher, with the access log and
// any response headers from the launch file.
func newLauncher(file *config.File) *launch.Launcher {
	handler := slog.Default().Handler()
	mws := []httpserver.HandlerFunc{middleware.AccessLog(handler)}
	opts := []toolserver.Option{
		toolserver.WithLogHandler(handler),
		toolserver.WithVersion(Version),
	}
	if file != nil {
		if !file.HTTP.ResponseHeaders.IsEmpty() {
			mws = append(mws, middleware.Headers(&file.HTTP.ResponseHeaders))
		}
		opts = append(opts, toolserver.WithTimeouts(file.HTTP.Timeouts()))
	}
	opts = append(opts, toolserver.WithMiddlewares(mws...))
	return toolserver.NewLauncher(opts...)
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the MCP tool server and block until it stops",
		Flags: launchFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, file, err := resolveLaunch(cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err := newLauncher(file).RunBlocking(ctx, cfg); err != nil {
				return cli.Exit(fmt.Errorf("serve: %w", err), 1)
			}
			return nil
		},
	}
}

func serveAppCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve-app",
		Usage: "Build the MCP application and serve it through the generic HTTP runner",
		Flags: launchFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, file, err := resolveLaunch(cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			l := newLauncher(file)
			app, err := l.BuildApplication(ctx, cfg)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err := l.ServeViaGenericRunner(ctx, app, cfg); err != nil {
				return cli.Exit(fmt.Errorf("serve-app: %w", err), 1)
			}
			return nil
		},
	}
}
