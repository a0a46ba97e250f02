// Package yopmail is a programmatic client for the yopmail.com disposable
// mailbox service. The service has no official API, so the client
// reproduces the cookie, token, and request-parameter choreography of the
// web UI and scrapes structured data out of the returned HTML and XML.
//
// Each Client is a single sequential session bound to one mailbox.
// Independent clients may run concurrently.
package yopmail

import "context"

// CheckInbox lists the first inbox page of a mailbox with a throwaway
// client.
func CheckInbox(ctx context.Context, mailbox string, cfg *Config) ([]Message, error) {
	return CheckInboxPage(ctx, mailbox, 1, cfg)
}

// CheckInboxPage lists one inbox page of a mailbox with a throwaway
// client.
func CheckInboxPage(ctx context.Context, mailbox string, page int, cfg *Config) ([]Message, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return nil, err
	}
	return c.ListMessages(ctx, page)
}

// GetMessageByID fetches the plain-text body of one message.
func GetMessageByID(ctx context.Context, mailbox, id string, cfg *Config) (string, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return "", err
	}
	return c.FetchMessage(ctx, id)
}

// GetMessageByIDFull fetches the full content of one message.
func GetMessageByIDFull(ctx context.Context, mailbox, id string, cfg *Config) (*MessageContent, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return nil, err
	}
	return c.FetchMessageFull(ctx, id)
}

// GetLastMessage returns the newest message summary, or nil for an empty
// inbox.
func GetLastMessage(ctx context.Context, mailbox string, cfg *Config) (*Message, error) {
	messages, err := CheckInbox(ctx, mailbox, cfg)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// GetLastMessageContent returns the plain-text body of the newest
// message, or "" for an empty inbox.
func GetLastMessageContent(ctx context.Context, mailbox string, cfg *Config) (string, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return "", err
	}
	messages, err := c.ListMessages(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(messages) == 0 {
		return "", nil
	}
	return c.FetchMessage(ctx, messages[0].ID)
}

// GetInboxCount returns the number of messages on the first inbox page.
func GetInboxCount(ctx context.Context, mailbox string, cfg *Config) (int, error) {
	messages, err := CheckInbox(ctx, mailbox, cfg)
	if err != nil {
		return 0, err
	}
	return len(messages), nil
}

// GetInboxSummary returns the first-page count and the newest message.
func GetInboxSummary(ctx context.Context, mailbox string, cfg *Config) (int, *Message, error) {
	messages, err := CheckInbox(ctx, mailbox, cfg)
	if err != nil {
		return 0, nil, err
	}
	if len(messages) == 0 {
		return 0, nil, nil
	}
	return len(messages), &messages[0], nil
}

// GetRSSFeedURL returns the unsigned feed URL for a mailbox without any
// network traffic.
func GetRSSFeedURL(mailbox string, cfg *Config) (string, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return "", err
	}
	return c.RSSFeedURL(""), nil
}

// GetRSSFeedData discovers, fetches, and parses the feed for a mailbox.
func GetRSSFeedData(ctx context.Context, mailbox string, cfg *Config) (string, []RSSItem, error) {
	c, err := NewClient(mailbox, cfg)
	if err != nil {
		return "", nil, err
	}
	return c.FetchRSSFeed(ctx, "")
}
