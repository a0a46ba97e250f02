package yopmail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// downmailPattern catches download-endpoint links the anchor pass missed,
// e.g. ones sitting in inline scripts or broken markup.
var downmailPattern = regexp.MustCompile(`(/downmail\?[^"' ]+)`)

// extractAttachments finds attachment links in a message body. Two
// passes: anchors carrying the service's attachment class, then a raw
// pattern scan over the body. Deduplicated by normalized URL, first
// occurrence wins.
func extractAttachments(body, base string) []Attachment {
	seen := make(map[string]struct{})
	var attachments []Attachment

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		doc.Find("a.pj").Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			u := normalizeURL(href, base)
			if _, dup := seen[u]; dup {
				return
			}
			seen[u] = struct{}{}

			name, _ := a.Attr("title")
			if name == "" {
				name = strings.TrimSpace(a.Text())
			}
			attachments = append(attachments, Attachment{Name: name, URL: u})
		})
	}

	for _, match := range downmailPattern.FindAllStringSubmatch(body, -1) {
		u := normalizeURL(match[1], base)
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		attachments = append(attachments, Attachment{URL: u})
	}

	return attachments
}

// normalizeURL resolves an href to an absolute URL against the base
// origin. Already-absolute hrefs are kept as-is.
func normalizeURL(href, base string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}

// OpenAttachment starts a download and returns the body stream together
// with the reported content length (-1 when unknown). The caller owns the
// ReadCloser.
func (c *Client) OpenAttachment(ctx context.Context, att Attachment) (io.ReadCloser, int64, error) {
	if err := c.ensureBootstrap(ctx); err != nil {
		return nil, 0, err
	}
	c.refreshAmbientCookies()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalizeURL(att.URL, c.baseURL), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range mailHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, 0, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return resp.Body, resp.ContentLength, nil
}

// DownloadAttachment fetches an attachment into memory.
func (c *Client) DownloadAttachment(ctx context.Context, att Attachment) ([]byte, error) {
	body, _, err := c.OpenAttachment(ctx, att)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	return buf.Bytes(), nil
}
