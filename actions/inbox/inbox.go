package inbox

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/yopmail-tools/go-yopmail-cli/actions/cliutil"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorCyan  = "\033[36m"
)

var ListCommand = &cli.Command{
	Name:    "list",
	Aliases: []string{"ls"},
	Usage:   "List messages in the inbox",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mailbox",
			Aliases:  []string{"m"},
			Usage:    "Mailbox name (without @yopmail.com)",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "page",
			Value: 1,
			Usage: "Inbox page number",
		},
		&cli.BoolFlag{
			Name:  "details",
			Usage: "Show message id, sender, and time",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug logging",
		},
	},
	Action: listAction,
}

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Show inbox summary",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mailbox",
			Aliases:  []string{"m"},
			Usage:    "Mailbox name (without @yopmail.com)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug logging",
		},
	},
	Action: infoAction,
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	client, st, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	messages, err := client.ListMessages(ctx, int(cmd.Int("page")))
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	cliutil.PersistSession(st, client)

	if len(messages) == 0 {
		fmt.Println("No messages found.")
		return nil
	}

	fmt.Printf("Found %d message(s):\n", len(messages))
	for i, msg := range messages {
		fmt.Printf("%s%d.%s %s\n", colorBold, i+1, colorReset, msg.Subject)
		if cmd.Bool("details") {
			fmt.Printf("   %sID:%s %s\n", colorDim, colorReset, msg.ID)
			if msg.Sender != "" {
				fmt.Printf("   %sFrom:%s %s\n", colorDim, colorReset, msg.Sender)
			}
			if msg.Time != "" {
				fmt.Printf("   %sTime:%s %s\n", colorDim, colorReset, msg.Time)
			}
		}
	}
	return nil
}

func infoAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	client, st, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	count, messages, err := client.InboxInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch inbox info: %w", err)
	}
	cliutil.PersistSession(st, client)

	fmt.Printf("%sMailbox:%s %s@%s\n", colorCyan, colorReset, client.Mailbox, client.Domain)
	fmt.Printf("%sMessages on page 1:%s %d\n", colorCyan, colorReset, count)
	if count > 0 {
		latest := messages[0]
		fmt.Printf("%sLatest:%s %s", colorCyan, colorReset, latest.Subject)
		if latest.Sender != "" {
			fmt.Printf(" (from %s)", latest.Sender)
		}
		fmt.Println()
	}
	return nil
}
