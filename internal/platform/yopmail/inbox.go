package yopmail

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Ordered fallback selectors for the inbox row fields. The service has
// shipped several markup generations; first match wins.
var (
	subjectSelectors = []string{".lsub", ".lms"}
	senderSelectors  = []string{".lmf"}
	timeSelectors    = []string{".lmh"}
)

// ListMessages fetches one page of the inbox listing. Messages come back
// in document order, which is the service's own (typically newest first).
// A non-2xx response is returned verbatim as a StatusError; there is no
// retry at this layer.
func (c *Client) ListMessages(ctx context.Context, page int) ([]Message, error) {
	if err := c.ensureBootstrap(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"login": {c.Mailbox},
		"p":     {strconv.Itoa(page)},
		"d":     {""},
		"ctrl":  {""},
		"yp":    {c.ypToken},
		"yj":    {YJToken},
		"v":     {Version},
		"r_c":   {""},
		"id":    {""},
		"ad":    {ADParam},
	}

	status, body, err := c.get(ctx, c.baseURL+"/inbox", params, inboxHeaders)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &StatusError{Code: status, Body: body}
	}

	return parseMessages(body), nil
}

// InboxInfo returns the first-page message count together with the
// messages themselves.
func (c *Client) InboxInfo(ctx context.Context) (int, []Message, error) {
	messages, err := c.ListMessages(ctx, 1)
	if err != nil {
		return 0, nil, err
	}
	return len(messages), messages, nil
}

// parseMessages scans a listing page for message rows. Rows without an
// element id are dropped; every other field degrades to empty rather than
// failing.
func parseMessages(body string) []Message {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var messages []Message
	doc.Find(".m").Each(func(_ int, row *goquery.Selection) {
		id, _ := row.Attr("id")
		if id == "" {
			return
		}
		messages = append(messages, Message{
			ID:      id,
			Subject: firstText(row, subjectSelectors),
			Sender:  firstText(row, senderSelectors),
			Time:    firstText(row, timeSelectors),
			// The listing markup carries no date cell; Date stays empty.
		})
	})
	return messages
}

// firstText evaluates selectors in order and returns the trimmed text of
// the first one that matches anything.
func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if node := s.Find(sel).First(); node.Length() > 0 {
			return strings.TrimSpace(node.Text())
		}
	}
	return ""
}
