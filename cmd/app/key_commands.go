package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/devdox-ai/devdox-api/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a random value for ENCRYPTION_MASTER_KEY",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "no-color",
					Value: false,
					Usage: "Disable colored output",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateMasterKey(commands.DefaultIO().Writer, cmd.Bool("no-color"))
			},
		},
	}
}
