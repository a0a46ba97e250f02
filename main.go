package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yopmail-tools/go-yopmail-cli/actions/check"
	"github.com/yopmail-tools/go-yopmail-cli/actions/inbox"
	"github.com/yopmail-tools/go-yopmail-cli/actions/message"
	"github.com/yopmail-tools/go-yopmail-cli/actions/random"
	"github.com/yopmail-tools/go-yopmail-cli/actions/rss"
	"github.com/yopmail-tools/go-yopmail-cli/actions/send"
)

func main() {
	cmd := &cli.Command{
		Name:    "go-yopmail-cli",
		Usage:   "Interact with YOPmail disposable inboxes (unofficial)",
		Version: "0.1.0",
		Action: func(context.Context, *cli.Command) error {
			fmt.Println("YOPmail CLI - Use 'go-yopmail-cli help' for available commands")
			return nil
		},
		Commands: []*cli.Command{
			inbox.ListCommand,
			inbox.InfoCommand,
			message.FetchCommand,
			send.SendCommand,
			rss.URLCommand,
			rss.DataCommand,
			check.CheckCommand,
			random.RandomCommand,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
