package yopmail

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
)

var emailPattern = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

// RSSFeedURL returns the unsigned feed URL for a mailbox. Pure string
// formatting, no network call. An empty mailbox means the client's own.
func (c *Client) RSSFeedURL(mailbox string) string {
	target := mailbox
	if target == "" {
		target = c.Mailbox
	}
	return fmt.Sprintf("%s/rss?login=%s", c.baseURL, target)
}

// FetchRSSFeed discovers and fetches the feed for a mailbox. The
// generation page is scanned for the signed feed link (carrying the h=
// authorization parameter); without one the unsigned URL is used as a
// best-effort fallback. Returns the feed URL actually fetched together
// with its items.
func (c *Client) FetchRSSFeed(ctx context.Context, mailbox string) (string, []RSSItem, error) {
	target := mailbox
	if target == "" {
		target = c.Mailbox
	}

	genURL := fmt.Sprintf("%s/gen-rss?login=%s", c.baseURL, target)
	_, genBody, err := c.get(ctx, genURL, nil, nil)
	if err != nil {
		return "", nil, err
	}

	feedURL := discoverFeedURL(genBody, c.baseURL, target)

	_, feedBody, err := c.get(ctx, feedURL, nil, nil)
	if err != nil {
		return feedURL, nil, err
	}

	items, err := parseRSSItems(feedBody)
	if err != nil {
		return feedURL, nil, err
	}
	return feedURL, items, nil
}

// discoverFeedURL finds the signed feed path for a mailbox in a
// generation-page body, falling back to the unsigned form.
func discoverFeedURL(genBody, base, mailbox string) string {
	pattern := regexp.MustCompile(`href="(/rss\?login=` + regexp.QuoteMeta(mailbox) + `&h=[^"]+)"`)
	if m := pattern.FindStringSubmatch(genBody); m != nil {
		return base + m[1]
	}
	return fmt.Sprintf("%s/rss?login=%s", base, mailbox)
}

// parseRSSItems parses a feed body into items. Absent fields get fixed
// defaults; the sender is derived from the first email-shaped token in
// the description.
func parseRSSItems(body string) ([]RSSItem, error) {
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	items := make([]RSSItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		subject := strings.TrimSpace(it.Title)
		if subject == "" {
			subject = "No Subject"
		}
		date := strings.TrimSpace(it.Published)
		if date == "" {
			date = "Unknown Date"
		}
		description := strings.TrimSpace(it.Description)
		sender := "Unknown"
		if m := emailPattern.FindString(description); m != "" {
			sender = m
		}
		items = append(items, RSSItem{
			Subject:     subject,
			Sender:      sender,
			Date:        date,
			URL:         strings.TrimSpace(it.Link),
			Description: description,
		})
	}
	return items, nil
}
