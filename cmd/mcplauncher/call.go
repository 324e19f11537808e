package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/client"
	"github.com/atlanticdynamic/mcplauncher/internal/fancy"
	"github.com/atlanticdynamic/mcplauncher/internal/launch"
)

var errBadArg = errors.New("argument must be key=value")

func callCmd() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Call a tool on a running server, or list its tools when no name is given",
		ArgsUsage: "[tool]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "MCP endpoint URL",
				Value: "http://localhost:8000/mcp",
			},
			&cli.StringFlag{
				Name:  "transport",
				Usage: "MCP transport (streamable-http, sse)",
				Value: string(launch.TransportStreamableHTTP),
			},
			&cli.StringSliceFlag{
				Name:    "arg",
				Aliases: []string{"a"},
				Usage:   "Tool argument as key=value; JSON values are decoded",
			},
		},
		Action: callAction,
	}
}

func callAction(ctx context.Context, cmd *cli.Command) error {
	args, err := parseToolArgs(cmd.StringSlice("arg"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	sess, err := client.Connect(ctx, cmd.String("url"), client.Options{
		Transport: launch.Transport(cmd.String("transport")),
		Version:   Version,
	})
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() { _ = sess.Close() }()

	out := cmd.Root().Writer
	if cmd.Args().Len() == 0 {
		listed, err := sess.ListTools(ctx)
		if err != nil {
			return cli.Exit(fmt.Errorf("list tools: %w", err), 1)
		}
		for _, t := range listed {
			fmt.Fprintf(out, "%s  %s\n", fancy.ToolText(t.Name), fancy.PathText(t.Description))
		}
		return nil
	}

	name := cmd.Args().First()
	res, err := sess.CallTool(ctx, name, args)
	if err != nil {
		return cli.Exit(fmt.Errorf("call %s: %w", name, err), 1)
	}
	fmt.Fprintln(out, res.String())
	if res.IsError {
		return cli.Exit(fmt.Sprintf("tool %s returned an error", name), 1)
	}
	return nil
}

// parseToolArgs turns key=value pairs into call arguments. Values that parse
// as JSON keep their JSON type; the rest are strings.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errBadArg, pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		args[key] = v
	}
	return args, nil
}
