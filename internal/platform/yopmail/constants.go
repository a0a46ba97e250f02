package yopmail

import "time"

const (
	// DefaultBaseURL is the public origin of the target service.
	DefaultBaseURL = "https://yopmail.com"

	// DefaultDomain is appended to mailbox names given without a domain.
	DefaultDomain = "yopmail.com"

	// Version is the protocol version constant the web UI sends as "v".
	Version = "9.2"

	// YJToken is the secondary protocol token the web UI sends as "yj".
	YJToken = "IZwx0AGH1BQxjBQx1ZmNmBQR"

	// FallbackYPToken is substituted when the login page does not carry
	// the hidden yp field. Observed to still be accepted by the service.
	FallbackYPToken = "ZAGplZmp0ZmR3ZQN4ZGx1ZGR"

	// ADParam is the legacy "ad" request parameter.
	ADParam = "0"

	// CookieDomain scopes the ambient cookies on the production origin.
	CookieDomain = ".yopmail.com"

	DefaultTimeout = 30 * time.Second
)

// altDomains is the allow-list of recipient domains the send form accepts.
var altDomains = []string{
	"yopmail.com",
	"yopmail.fr",
	"yopmail.net",
}

// defaultSuccessMarkers are substrings that mark a send response body as
// successful. Heuristic; overridable through Config.SuccessMarkers.
var defaultSuccessMarkers = []string{
	"msgto|",
	"sent successfully",
	"message sent",
	"ok|",
}

// defaultCookies seeds the jar at construction, mirroring the cookie state
// a browser carries into the webmail frame.
var defaultCookies = map[string]string{
	"yc":   "EAGNlBGD2Awx4ZmpkZGN4ZQV",
	"yses": "zz6dtenHstru+L/GLPPQD4a5iJbTzoLzBsyP3HkfhNIwBQRWRdGPgRYto8uoBVoi",
}

// defaultHeaders go on every request.
var defaultHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// inboxHeaders mimic the iframe navigation the inbox frame performs.
var inboxHeaders = map[string]string{
	"Referer":        "https://yopmail.com/wm",
	"Sec-Fetch-Dest": "iframe",
	"Sec-Fetch-Mode": "navigate",
	"Sec-Fetch-Site": "same-origin",
}

// mailHeaders mimic the mail frame fetch.
var mailHeaders = map[string]string{
	"Referer":                   "https://yopmail.com/en/wm",
	"Sec-Fetch-Dest":            "iframe",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "same-origin",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
}

// sendHeaders mimic the XHR the compose form issues.
var sendHeaders = map[string]string{
	"Content-Type":    "application/x-www-form-urlencoded",
	"Origin":          "https://yopmail.com",
	"Referer":         "https://yopmail.com/wm",
	"Accept":          "*/*",
	"Accept-Language": "en-US,en;q=0.9,de-DE;q=0.8,de;q=0.7",
	"Sec-Fetch-Dest":  "empty",
	"Sec-Fetch-Mode":  "cors",
	"Sec-Fetch-Site":  "same-origin",
	"Priority":        "u=1, i",
}
