package send

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/yopmail-tools/go-yopmail-cli/actions/cliutil"
	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

var SendCommand = &cli.Command{
	Name:  "send",
	Usage: "Send an email to another YOPmail address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mailbox",
			Aliases:  []string{"m"},
			Usage:    "Mailbox name (without @yopmail.com)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "Recipient address (must be a YOPmail domain)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "subject",
			Usage:    "Message subject",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "body",
			Usage: "Message body (read from stdin when omitted)",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug logging",
		},
	},
	Action: sendAction,
}

func sendAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	body := cmd.String("body")
	if body == "" {
		body, err = readBody()
		if err != nil {
			return err
		}
	}

	client, st, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	err = client.SendMessage(ctx, cmd.String("to"), cmd.String("subject"), body)
	switch {
	case err == nil:
		cliutil.PersistSession(st, client)
		fmt.Printf("Message sent to %s\n", cmd.String("to"))
		return nil
	case errors.Is(err, yopmail.ErrInvalidRecipient):
		return fmt.Errorf("recipient %q is not a YOPmail address", cmd.String("to"))
	default:
		var authErr *yopmail.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("service rejected the message: %s", authErr.Body)
		}
		return fmt.Errorf("failed to send message: %w", err)
	}
}

// readBody takes the message body from stdin. On a terminal the user is
// prompted; on a pipe the input is read silently.
func readBody() (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Enter message body, end with Ctrl-D:")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read message body: %w", err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", fmt.Errorf("message body cannot be empty")
	}
	return body, nil
}
