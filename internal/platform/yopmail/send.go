package yopmail

import (
	"context"
	"net/url"
	"strings"
)

// SendMessage posts a new message through the web compose form. The
// recipient must pass both local domain checks before any request is
// made; failing either is ErrInvalidRecipient. A 2xx response is still
// inspected for the service's success markers, because the form handler
// reports its own errors with status 200: a marker-less body comes back
// as an AuthError carrying the response text.
func (c *Client) SendMessage(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if !strings.HasSuffix(to, "@"+DefaultDomain) {
		return ErrInvalidRecipient
	}
	allowed := false
	for _, d := range altDomains {
		if strings.HasSuffix(to, d) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidRecipient
	}

	if err := c.ensureBootstrap(ctx); err != nil {
		return err
	}

	form := url.Values{
		"msgfrom":    {c.Mailbox + "@" + c.Domain},
		"msgto":      {to},
		"msgsubject": {subject},
		"msgbody":    {body},
	}

	status, text, err := c.postForm(ctx, c.baseURL+"/writepost", form, sendHeaders)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &StatusError{Code: status, Body: text}
	}

	lower := strings.ToLower(text)
	for _, marker := range c.config.SuccessMarkers {
		if strings.Contains(lower, marker) {
			return nil
		}
	}
	return &AuthError{Body: text}
}
