package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/canarydrop/cmd/app/commands"
	"github.com/allisson/canarydrop/internal/app"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Apply pending database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					container.Logger().Debug("starting migrate", slog.String("version", version))
					return commands.RunMigrations(
						container,
						container.Logger(),
						commands.DefaultIO().Writer,
						container.Config().DBDriver,
					)
				})
			},
		},
	}
}
