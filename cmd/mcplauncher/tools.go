package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/tools"
)

func toolsCmd() *cli.Command {
	return &cli.Command{
		Name:      "tools",
		Usage:     "List the tools defined in a directory",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tools",
				Usage: "Tools directory, instead of the positional argument",
				Value: "./example_tools",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := toolsDirArg(cmd)
			set, err := tools.Load(dir, tools.WithLogHandler(slog.Default().Handler()))
			if err != nil {
				return cli.Exit(err, 1)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, set.ToTree())
			return err
		},
	}
}

// toolsDirArg prefers the positional argument over --tools.
func toolsDirArg(cmd *cli.Command) string {
	if cmd.Args().Len() > 0 {
		return cmd.Args().First()
	}
	return cmd.String("tools")
}
