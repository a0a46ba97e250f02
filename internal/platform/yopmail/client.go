package yopmail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// NewClient builds a client bound to one mailbox. The mailbox string may
// carry a domain ("alice@yopmail.fr"); without one the default domain is
// assumed.
func NewClient(mailbox string, cfg *Config) (*Client, error) {
	local, domain := ParseMailbox(mailbox)
	if local == "" {
		return nil, fmt.Errorf("mailbox name cannot be empty")
	}

	config := Config{}
	if cfg != nil {
		config = *cfg
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if len(config.SuccessMarkers) == 0 {
		config.SuccessMarkers = defaultSuccessMarkers
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}

	transport, err := buildTransport(config.ProxyURL)
	if err != nil {
		return nil, err
	}

	jar, _ := cookiejar.New(nil)

	c := &Client{
		Mailbox: local,
		Domain:  domain,
		baseURL: baseURL,
		config:  config,
		jar:     jar,
		httpClient: &http.Client{
			Jar:       jar,
			Timeout:   config.Timeout,
			Transport: transport,
		},
		log: config.Logger.WithField("mailbox", local),
	}

	c.seedDefaultCookies()

	return c, nil
}

func buildTransport(proxyURL string) (http.RoundTripper, error) {
	if proxyURL == "" {
		return nil, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("%w: proxy scheme %q", ErrUnsupported, u.Scheme)
	}

	return &http.Transport{Proxy: http.ProxyURL(u)}, nil
}

// Token returns the current yp token, empty until Bootstrap has run.
func (c *Client) Token() string {
	return c.ypToken
}

// BaseURL returns the origin this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// cookieDomain picks the attribute value for client-set cookies. The
// production origin wants the shared parent domain; on overridden bases
// (tests, mirrors) the jar would reject anything but the host itself.
func (c *Client) cookieDomain(base *url.URL) string {
	host := base.Hostname()
	if host == DefaultDomain || strings.HasSuffix(host, "."+DefaultDomain) {
		return CookieDomain
	}
	return host
}

func (c *Client) seedDefaultCookies() {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	domain := c.cookieDomain(base)
	cookies := make([]*http.Cookie, 0, len(defaultCookies))
	for name, value := range defaultCookies {
		cookies = append(cookies, &http.Cookie{
			Name:   name,
			Value:  value,
			Domain: domain,
			Path:   "/",
		})
	}
	c.jar.SetCookies(base, cookies)
}

// refreshAmbientCookies sets the browser-side state cookies the service
// expects fresh on every sensitive request: the current UTC time of day
// and the mailbox name.
func (c *Client) refreshAmbientCookies() {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	domain := c.cookieDomain(base)
	c.jar.SetCookies(base, []*http.Cookie{
		{Name: "ytime", Value: time.Now().UTC().Format("15:04"), Domain: domain, Path: "/"},
		{Name: "ywm", Value: c.Mailbox, Domain: domain, Path: "/"},
	})
}

// get issues a GET with the default header bundle plus extras and drains
// the body. The status code is returned as-is; callers decide what a
// non-2xx means for them.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values, extra map[string]string) (int, string, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, extra)
}

// postForm issues a form POST with the default header bundle plus extras.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values, extra map[string]string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, extra)
}

func (c *Client) do(req *http.Request, extra map[string]string) (int, string, error) {
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"bytes":  len(body),
	}).Debug("response")

	return resp.StatusCode, string(body), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// SessionState is the portable snapshot of one client's session, suitable
// for persistence between CLI invocations.
type SessionState struct {
	Mailbox   string            `json:"mailbox"`
	Domain    string            `json:"domain"`
	YPToken   string            `json:"yp_token,omitempty"`
	Cookies   map[string]string `json:"cookies,omitempty"`
	LastLogin int64             `json:"last_login,omitempty"`
}

// Session exports the current session state.
func (c *Client) Session() *SessionState {
	cookies := make(map[string]string)
	if base, err := url.Parse(c.baseURL); err == nil {
		for _, ck := range c.jar.Cookies(base) {
			cookies[ck.Name] = ck.Value
		}
	}
	return &SessionState{
		Mailbox:   c.Mailbox,
		Domain:    c.Domain,
		YPToken:   c.ypToken,
		Cookies:   cookies,
		LastLogin: time.Now().Unix(),
	}
}

// RestoreSession loads a previously exported session. A restored token is
// used as-is; it is never proactively refreshed, only replaced when the
// caller bootstraps again.
func (c *Client) RestoreSession(s *SessionState) {
	if s == nil || s.Mailbox != c.Mailbox {
		return
	}
	if s.YPToken != "" {
		c.ypToken = s.YPToken
	}
	if len(s.Cookies) == 0 {
		return
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	domain := c.cookieDomain(base)
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for name, value := range s.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:   name,
			Value:  value,
			Domain: domain,
			Path:   "/",
		})
	}
	c.jar.SetCookies(base, cookies)
}
