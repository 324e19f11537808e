package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/robbyt/go-loglater"
	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/mcplauncher/internal/fancy"
	"github.com/atlanticdynamic/mcplauncher/internal/tools"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"lint"},
		Usage:     "Validate a tools directory",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show detailed tree view of the validated tools",
			},
			&cli.StringFlag{
				Name:  "tools",
				Usage: "Tools directory, instead of the positional argument",
				Value: "./example_tools",
			},
		},
		Suggest: true,
		Action:  validateAction,
	}
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	dir := toolsDirArg(cmd)
	out := cmd.Root().Writer

	// Load logs are held back and only shown when validation fails.
	collector := loglater.NewLogCollector(nil)
	set, err := tools.Load(dir, tools.WithLogHandler(collector))
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", fancy.ErrorText("Tools directory is invalid:"), dir)
		for _, line := range errorLines(err) {
			fmt.Fprintf(out, "  - %s\n", line)
		}
		if playErr := collector.PlayLogs(slog.Default().Handler()); playErr != nil {
			err = errors.Join(err, playErr)
		}
		return cli.Exit(fmt.Errorf("validation failed: %w", err), 1)
	}

	fmt.Fprintf(out, "%s %s\n", fancy.ValidText("Tools directory is valid:"), dir)
	if cmd.Bool("tree") {
		_, err := fmt.Fprintln(out, set.ToTree())
		return err
	}
	renderSummary(out, set)
	return nil
}

// errorLines flattens joined errors into one line per failure.
func errorLines(err error) []string {
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func renderSummary(w io.Writer, set *tools.Set) {
	counts := make(map[tools.Kind]int)
	for _, t := range set.All() {
		counts[t.Kind]++
	}
	var b strings.Builder
	b.WriteString("\n" + fancy.HeaderStyle.Render("Tools Summary:") + "\n")
	fmt.Fprintf(&b, "- Path: %s\n", set.Dir())
	fmt.Fprintf(&b, "- Tools: %d\n", set.Len())
	fmt.Fprintf(&b, "- Risor: %d\n", counts[tools.KindRisor])
	fmt.Fprintf(&b, "- Starlark: %d\n", counts[tools.KindStarlark])
	fmt.Fprintf(&b, "- Builtin: %d\n", counts[tools.KindBuiltin])
	b.WriteString("\nUse --tree for a more detailed view of the tools.")
	fmt.Fprintln(w, b.String())
}
