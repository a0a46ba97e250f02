package yopmail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Bootstrap establishes the server-side session the web UI would have:
// ambient cookies, the anti-forgery yp token scraped from the login page,
// and the auto-submitting login form replayed. It is idempotent in effect
// but not memoized; token-dependent operations call it lazily when no
// token is held.
func (c *Client) Bootstrap(ctx context.Context) error {
	c.refreshAmbientCookies()

	loginURL := fmt.Sprintf("%s/en/?login=%s", c.baseURL, url.QueryEscape(c.Mailbox))
	_, body, err := c.get(ctx, loginURL, nil, nil)
	if err != nil {
		return err
	}

	token := extractYPToken(body)
	if token == "" {
		// The service sometimes serves the page without the hidden
		// field and still accepts this constant afterwards.
		c.log.Debug("yp token field missing, using fallback token")
		token = FallbackYPToken
	}
	c.ypToken = token

	// Replay the hidden auto-submit login form. Best effort: the session
	// usually works without it, so its outcome is logged and dropped.
	form := url.Values{
		"login": {c.Mailbox},
		"id":    {""},
		"yp":    {token},
	}
	if status, _, err := c.postForm(ctx, c.baseURL+"/en/", form, nil); err != nil {
		c.log.WithError(err).Debug("login form post failed")
	} else if !isSuccess(status) {
		c.log.WithField("status", status).Debug("login form post rejected")
	}

	return nil
}

// ensureBootstrap runs Bootstrap once per client lifetime, lazily.
func (c *Client) ensureBootstrap(ctx context.Context) error {
	if c.ypToken != "" {
		return nil
	}
	return c.Bootstrap(ctx)
}

// extractYPToken pulls the hidden anti-forgery field out of a login page.
// Returns "" when the field is absent.
func extractYPToken(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	value, _ := doc.Find("input#yp").First().Attr("value")
	return value
}
