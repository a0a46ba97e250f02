package random

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

var RandomCommand = &cli.Command{
	Name:  "random",
	Usage: "Generate a random mailbox name",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "len",
			Value: 10,
			Usage: "Length of the mailbox name (clamped to 6-32)",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		fmt.Println(yopmail.GenerateRandomMailbox(int(cmd.Int("len"))))
		return nil
	},
}
