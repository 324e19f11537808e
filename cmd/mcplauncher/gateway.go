package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/gateway"
	"github.com/atlanticdynamic/mcplauncher/internal/httpserver/middleware"
)

func gatewayCmd() *cli.Command {
	return &cli.Command{
		Name:  "gateway",
		Usage: "Serve the local tools and every stdio MCP server from mcp.json over SSE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mcp-json",
				Usage: "Path to mcp.json",
				Value: gateway.DefaultConfigFile,
			},
			&cli.StringFlag{
				Name:  "tools",
				Usage: "Local tools directory served at /sse; empty disables it",
				Value: "./tools",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host",
				Value: "0.0.0.0",
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port",
				Value:   gateway.DefaultPort,
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ups, err := gateway.LoadConfig(cmd.String("mcp-json"))
			if err != nil {
				return cli.Exit(err, 1)
			}

			handler := slog.Default().Handler()
			cfg := gateway.Config{
				Upstreams: ups,
				ToolsPath: cmd.String("tools"),
				Version:   Version,
			}
			g, err := gateway.New(ctx, cfg,
				gateway.WithLogHandler(handler),
				gateway.WithMiddlewares(middleware.AccessLog(handler)))
			if err != nil {
				return cli.Exit(err, 1)
			}
			if err := g.Run(ctx, cmd.String("host"), cmd.Int("port")); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}
