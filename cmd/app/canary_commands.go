package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/canarydrop/cmd/app/commands"
	"github.com/allisson/canarydrop/internal/app"
)

func getCanaryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create",
			Usage: "Create a new canary token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "type",
					Aliases:  []string{"t"},
					Required: true,
					Usage: "Token type (dns, http, aws-key, sql, email, api-key, qr-code, " +
						"document, document-docx, document-xlsx, document-pptx, document-pdf)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Name for the canary",
				},
				&cli.StringFlag{
					Name:    "memo",
					Aliases: []string{"m"},
					Usage:   "Additional notes",
				},
				&cli.StringFlag{
					Name:    "alert",
					Aliases: []string{"a"},
					Value:   "console",
					Usage:   "Alert method (console, email, webhook)",
				},
				&cli.StringFlag{
					Name:    "destination",
					Aliases: []string{"d"},
					Usage:   "Alert destination (email address or webhook URL)",
				},
				&cli.StringFlag{
					Name:  "url",
					Usage: "Custom URL (qr-code only)",
				},
				&cli.StringFlag{
					Name:  "document-type",
					Value: "docx",
					Usage: "Document subtype when --type is document (docx, xlsx, pptx, pdf)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					canaryUseCase, err := container.CanaryUseCase()
					if err != nil {
						return err
					}

					return commands.RunCreate(
						ctx,
						canaryUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						commands.CreateOptions{
							TokenType:    cmd.String("type"),
							DocumentType: cmd.String("document-type"),
							Name:         cmd.String("name"),
							Memo:         cmd.String("memo"),
							AlertMethod:  cmd.String("alert"),
							Destination:  cmd.String("destination"),
							URL:          cmd.String("url"),
						},
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list",
			Usage: "List all canary tokens",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Usage:   "Filter by token type",
				},
				jsonFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					canaryUseCase, err := container.CanaryUseCase()
					if err != nil {
						return err
					}

					return commands.RunList(
						ctx,
						canaryUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("type"),
						outputFormat(cmd),
					)
				})
			},
		},
		{
			Name:      "info",
			Usage:     "Show token details",
			ArgsUsage: "<token-id>",
			Flags:     []cli.Flag{jsonFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				tokenID, err := tokenIDArg(cmd)
				if err != nil {
					return err
				}

				return withContainer(ctx, func(container *app.Container) error {
					canaryUseCase, err := container.CanaryUseCase()
					if err != nil {
						return err
					}

					return commands.RunInfo(
						ctx,
						canaryUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						tokenID,
						outputFormat(cmd),
					)
				})
			},
		},
		{
			Name:      "delete",
			Usage:     "Delete a canary token and its access history",
			ArgsUsage: "<token-id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Usage:   "Skip confirmation",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				tokenID, err := tokenIDArg(cmd)
				if err != nil {
					return err
				}

				return withContainer(ctx, func(container *app.Container) error {
					canaryUseCase, err := container.CanaryUseCase()
					if err != nil {
						return err
					}

					return commands.RunDelete(
						ctx,
						canaryUseCase,
						container.Logger(),
						commands.DefaultIO(),
						tokenID,
						cmd.Bool("yes"),
					)
				})
			},
		},
		{
			Name:      "trigger",
			Usage:     "Manually trigger a token (testing)",
			ArgsUsage: "<token-id>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "ip",
					Usage: "IP address of the simulated access",
				},
				&cli.StringFlag{
					Name:  "user-agent",
					Usage: "User agent of the simulated access",
				},
				&cli.StringFlag{
					Name:  "metadata",
					Usage: "Additional metadata as a JSON object of scalar values",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				tokenID, err := tokenIDArg(cmd)
				if err != nil {
					return err
				}

				return withContainer(ctx, func(container *app.Container) error {
					accessEventUseCase, err := container.AccessEventUseCase()
					if err != nil {
						return err
					}

					return commands.RunTrigger(
						ctx,
						accessEventUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						commands.TriggerOptions{
							TokenID:   tokenID,
							IPAddress: cmd.String("ip"),
							UserAgent: cmd.String("user-agent"),
							Metadata:  cmd.String("metadata"),
						},
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "history",
			Usage: "Show access history",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Filter by token ID",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Usage:   "Maximum number of events (defaults to ACCESS_LOG_DEFAULT_LIMIT)",
				},
				jsonFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					canaryUseCase, err := container.CanaryUseCase()
					if err != nil {
						return err
					}
					accessEventUseCase, err := container.AccessEventUseCase()
					if err != nil {
						return err
					}

					return commands.RunHistory(
						ctx,
						canaryUseCase,
						accessEventUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("token"),
						int(cmd.Int("limit")),
						outputFormat(cmd),
					)
				})
			},
		},
	}
}
