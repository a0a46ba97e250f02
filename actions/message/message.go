package message

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/yopmail-tools/go-yopmail-cli/actions/cliutil"
	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

var FetchCommand = &cli.Command{
	Name:  "fetch",
	Usage: "Fetch a message body by ID",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "mailbox",
			Aliases:  []string{"m"},
			Usage:    "Mailbox name (without @yopmail.com)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "id",
			Usage:    "Message ID (as shown by 'list --details')",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "html",
			Usage: "Print HTML instead of plain text",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Print the raw response body",
		},
		&cli.BoolFlag{
			Name:  "attachments",
			Usage: "List attachment names and URLs",
		},
		&cli.StringFlag{
			Name:  "download-attachments",
			Usage: "Download attachments into `DIR`",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug logging",
		},
	},
	Action: fetchAction,
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cliutil.LoadConfig(cmd.Bool("debug"))
	if err != nil {
		return err
	}

	client, st, err := cliutil.BuildClient(cmd.String("mailbox"), cfg)
	if err != nil {
		return err
	}

	content, err := client.FetchMessageFull(ctx, cmd.String("id"))
	if err != nil {
		return fmt.Errorf("failed to fetch message: %w", err)
	}
	cliutil.PersistSession(st, client)

	switch {
	case cmd.Bool("raw"):
		fmt.Println(content.Raw)
	case cmd.Bool("html"):
		fmt.Println(content.HTML)
	default:
		fmt.Println(content.Text)
	}

	if cmd.Bool("attachments") || cmd.String("download-attachments") != "" {
		if len(content.Attachments) == 0 {
			fmt.Println("No attachments found.")
			return nil
		}
		fmt.Printf("Attachments (%d):\n", len(content.Attachments))
		for i, att := range content.Attachments {
			name := att.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%d. %s %s\n", i+1, name, att.URL)
		}
	}

	if dir := cmd.String("download-attachments"); dir != "" {
		return downloadAll(ctx, client, content.Attachments, dir)
	}
	return nil
}

func downloadAll(ctx context.Context, client *yopmail.Client, attachments []yopmail.Attachment, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	progress := mpb.New(mpb.WithWidth(60))
	for _, att := range attachments {
		if err := downloadOne(ctx, client, att, dir, progress); err != nil {
			return err
		}
	}
	progress.Wait()
	return nil
}

func downloadOne(ctx context.Context, client *yopmail.Client, att yopmail.Attachment, dir string, progress *mpb.Progress) error {
	name := attachmentFilename(att)
	path := filepath.Join(dir, name)

	body, total, err := client.OpenAttachment(ctx, att)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = body
	if total > 0 {
		bar := progress.AddBar(total,
			mpb.PrependDecorators(decor.Name(name, decor.WCSyncSpaceR)),
			mpb.AppendDecorators(decor.CountersKibiByte("% .1f / % .1f")),
		)
		proxy := bar.ProxyReader(body)
		defer proxy.Close()
		reader = proxy
	}

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// attachmentFilename picks a safe on-disk name: the attachment's own name
// when present, otherwise a generated one.
func attachmentFilename(att yopmail.Attachment) string {
	name := strings.TrimSpace(att.Name)
	if name == "" {
		return "attachment-" + uuid.NewString()
	}
	// Flatten path separators from scraped names.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return filepath.Base(name)
}
