package rss

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/yopmail-tools/go-yopmail-cli/actions/cliutil"
)

var URLCommand = &cli.Command{
	Name:  "rss-url",
	Usage: "Show the RSS feed URL for a mailbox",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mailbox",
			Aliases:  []string{"m"},
			Usage:    "Mailbox name (without @yopmail.com)",
			Required: true,
		},
	},
	Action: urlAction,
}

var DataCommand = &cli.Command{
	Name:  "rss-data",
	Usage: "Fetch and print RSS feed items for a mailbox",
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
	Action: dataAction,
}

func urlAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(false)
	if err != nil {
		return err
	}

	client, _, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	fmt.Println(client.RSSFeedURL(""))
	return nil
}

func dataAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	client, st, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	feedURL, items, err := client.FetchRSSFeed(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to fetch RSS feed: %w", err)
	}
	cliutil.PersistSession(st, client)

	fmt.Printf("Feed URL: %s\n", feedURL)
	if len(items) == 0 {
		fmt.Println("No feed items.")
		return nil
	}
	for i, item := range items {
		fmt.Printf("%d. %s\n", i+1, item.Subject)
		fmt.Printf("   From: %s\n", item.Sender)
		fmt.Printf("   Date: %s\n", item.Date)
		if item.URL != "" {
			fmt.Printf("   Link: %s\n", item.URL)
		}
	}
	return nil
}
