package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/canarydrop/cmd/app/commands"
	"github.com/allisson/canarydrop/internal/app"
	"github.com/allisson/canarydrop/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getCanaryCommands()...)
	cmds = append(cmds, getReportCommands()...)
	return cmds
}

// withContainer runs fn against a container built from the environment and shuts the
// container down afterwards, on success and failure alike.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() {
		if err := container.Shutdown(ctx); err != nil {
			container.Logger().Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	return fn(container)
}

// formatFlag is the --format flag shared by commands with text and JSON output.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text' or 'json'",
	}
}

// jsonFlag is the --json shorthand for --format json.
func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Output as JSON (same as --format json)",
	}
}

// outputFormat resolves --json and --format into a single format.
func outputFormat(cmd *cli.Command) string {
	if cmd.Bool("json") {
		return commands.FormatJSON
	}
	return cmd.String("format")
}

// tokenIDArg returns the required token id positional argument.
func tokenIDArg(cmd *cli.Command) (string, error) {
	tokenID := cmd.Args().First()
	if tokenID == "" {
		return "", fmt.Errorf("token id argument is required")
	}
	return tokenID, nil
}
