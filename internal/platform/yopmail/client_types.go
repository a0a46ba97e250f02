package yopmail

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/sirupsen/logrus"
)

// Config carries the tunable parts of a Client. The zero value plus
// NewClient defaults is a working production configuration.
type Config struct {
	// BaseURL overrides the service origin (no trailing slash required).
	BaseURL string

	// Timeout applies per request, enforced by the transport.
	Timeout time.Duration

	// ProxyURL routes all traffic through an outbound proxy when set.
	ProxyURL string

	// SuccessMarkers override the substrings that mark a 2xx send
	// response as a real success. Defaults are best-effort guesses
	// against the service's form handler output.
	SuccessMarkers []string

	// Logger receives structured debug output. Defaults to the standard
	// logger at its current level.
	Logger *logrus.Logger
}

// Client is a single-session yopmail webmail client. It owns its cookie
// jar and yp token exclusively; one Client issues at most one request at
// a time. Run independent Clients for concurrent mailboxes.
type Client struct {
	Mailbox string
	Domain  string

	baseURL string
	config  Config

	jar        *cookiejar.Jar
	httpClient *http.Client
	ypToken    string

	log *logrus.Entry
}

// Message is a single row of the inbox listing page.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender,omitempty"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
}

// MessageContent is the full content of one fetched message.
type MessageContent struct {
	Text        string       `json:"text"`
	HTML        string       `json:"html"`
	Raw         string       `json:"raw"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a downloadable file referenced from a message body.
// URL is always absolute; Name may be empty when the markup carries none.
type Attachment struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// RSSItem is one entry of a mailbox feed.
type RSSItem struct {
	Subject     string `json:"subject"`
	Sender      string `json:"sender"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}
