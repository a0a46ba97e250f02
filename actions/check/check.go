package check

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/yopmail-tools/go-yopmail-cli/actions/cliutil"
	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

var CheckCommand = &cli.Command{
	Name:      "check",
	Usage:     "Show inbox summaries for several mailboxes at once",
	ArgsUsage: "MAILBOX [MAILBOX...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug logging",
		},
	},
	Action: checkAction,
}

type summary struct {
	mailbox string
	count   int
	latest  *yopmail.Message
	err     error
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	mailboxes := cmd.Args().Slice()
	if len(mailboxes) == 0 {
		return fmt.Errorf("at least one mailbox is required")
	}

	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	clientCfg := cfg.ClientConfig()

	// One independent session per mailbox; sessions share nothing, so
	// they can run in parallel.
	results := make([]summary, len(mailboxes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, mailbox := range mailboxes {
		i, mailbox := i, mailbox
		g.Go(func() error {
			count, latest, err := yopmail.GetInboxSummary(gctx, mailbox, clientCfg)
			results[i] = summary{mailbox: mailbox, count: count, latest: latest, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			fmt.Printf("%-20s error: %v\n", r.mailbox, r.err)
			continue
		}
		line := fmt.Sprintf("%-20s %d message(s)", r.mailbox, r.count)
		if r.latest != nil {
			line += fmt.Sprintf("  latest: %s", r.latest.Subject)
		}
		fmt.Println(line)
	}
	return nil
}
