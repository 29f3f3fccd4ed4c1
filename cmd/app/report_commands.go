package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/canarydrop/cmd/app/commands"
	"github.com/allisson/canarydrop/internal/app"
)

func getReportCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "stats",
			Usage: "Show statistics",
			Flags: []cli.Flag{jsonFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					reportUseCase, err := container.ReportUseCase()
					if err != nil {
						return err
					}

					return commands.RunStats(
						ctx,
						reportUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						outputFormat(cmd),
					)
				})
			},
		},
		{
			Name:  "export",
			Usage: "Export all canaries and recent access events to JSON",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Output file path (default canarydrop_export_YYYYMMDD_HHMMSS.json)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					reportUseCase, err := container.ReportUseCase()
					if err != nil {
						return err
					}

					return commands.RunExport(
						ctx,
						reportUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("output"),
					)
				})
			},
		},
	}
}
