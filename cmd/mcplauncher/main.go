package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "mcplauncher",
		Version: Version,
		Usage:   "Serve a directory of MCP tools over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "log-output",
				Usage:   "Log destination (stdout, stderr, a file path or file:// URL)",
				Value:   "stderr",
				Sources: cli.EnvVars("LOG_OUTPUT"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			serveCmd(),
			serveAppCmd(),
			toolsCmd(),
			validateCmd(),
			callCmd(),
			gatewayCmd(),
			versionCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
