package yopmail

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// containerSelectors is the priority list of message content containers.
// The service has used all of these across markup generations.
var containerSelectors = []string{
	"#mailctn #mail",
	"#mailctn",
	"#mail",
	"div.mail-body",
	"div.mail",
	"div.message",
	"div.content",
	"div.body",
}

// idVariant is one guessed encoding of a caller-supplied message
// reference. The internal id space is undocumented, so the fetch probes
// variants in a fixed order.
type idVariant struct {
	id         string
	fullParams bool
}

// messageIDVariants builds the probe order for a reference: the m-prefixed
// main form with full parameters, the e-prefixed alternate with full
// parameters, and the reference untouched with the minimal parameter set.
func messageIDVariants(ref string) []idVariant {
	raw := strings.TrimSpace(ref)

	var main string
	switch {
	case strings.HasPrefix(raw, "m"):
		main = raw
	case strings.HasPrefix(raw, "e_"):
		main = "m" + raw
	default:
		main = "m_" + strings.TrimPrefix(raw, "m_")
	}

	alt := raw
	if !strings.HasPrefix(raw, "e_") && !strings.HasPrefix(raw, "me_") && !strings.HasPrefix(raw, "m_") {
		alt = "e_" + raw
	}

	return []idVariant{
		{id: main, fullParams: true},
		{id: alt, fullParams: true},
		{id: raw, fullParams: false},
	}
}

// FetchMessage returns the plain-text body of a message.
func (c *Client) FetchMessage(ctx context.Context, ref string) (string, error) {
	content, err := c.FetchMessageFull(ctx, ref)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// FetchMessageFull resolves a message reference against the mail endpoint
// and returns its full content. Each id variant is probed in order: a 2xx
// wins, a 400 means the id format was rejected and the next guess is
// worth trying, and any other status aborts immediately since no id
// format fixes an auth or server failure. The final error reports the
// last observed status and body.
func (c *Client) FetchMessageFull(ctx context.Context, ref string) (*MessageContent, error) {
	if err := c.ensureBootstrap(ctx); err != nil {
		return nil, err
	}
	// The service appears to validate ytime freshness per mail fetch.
	c.refreshAmbientCookies()

	mailURL := c.baseURL + "/en/mail"

	lastStatus := http.StatusBadRequest
	lastBody := "mail fetch failed"
	for _, variant := range messageIDVariants(ref) {
		params := url.Values{
			"b":  {c.Mailbox},
			"id": {variant.id},
		}
		if variant.fullParams {
			params.Set("yp", c.ypToken)
			params.Set("yj", YJToken)
			params.Set("v", Version)
			params.Set("d", "")
			params.Set("ctrl", "")
			params.Set("r_c", "")
			params.Set("ad", ADParam)
		}

		status, body, err := c.get(ctx, mailURL, params, mailHeaders)
		if err != nil {
			return nil, err
		}
		if isSuccess(status) {
			return &MessageContent{
				Text:        extractMessageText(body),
				HTML:        extractMessageHTML(body),
				Raw:         body,
				Attachments: extractAttachments(body, c.baseURL),
			}, nil
		}

		lastStatus, lastBody = status, body
		if status != http.StatusBadRequest {
			break
		}
		c.log.WithField("id", variant.id).Debug("message id variant rejected, trying next")
	}

	return nil, &StatusError{Code: lastStatus, Body: lastBody}
}

// extractMessageText returns the collapsed plain text of the first
// content container that yields non-trivial text, falling back to the
// whole body.
func extractMessageText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return collapseWhitespace(body)
	}
	for _, sel := range containerSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := node.Text(); len(strings.TrimSpace(text)) > 5 {
			return collapseWhitespace(text)
		}
	}
	return collapseWhitespace(body)
}

// extractMessageHTML returns the inner HTML of the first content
// container that yields non-trivial markup, falling back to the raw body.
func extractMessageHTML(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	for _, sel := range containerSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if html, err := node.Html(); err == nil && len(strings.TrimSpace(html)) > 5 {
			return html
		}
	}
	return body
}

// collapseWhitespace folds every whitespace run into a single space and
// trims the ends.
func collapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
