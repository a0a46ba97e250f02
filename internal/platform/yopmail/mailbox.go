package yopmail

import (
	"math/rand"
	"strings"
)

// ParseMailbox splits a raw mailbox string at the first "@". Both sides
// are trimmed and lowercased; when no domain is given the default domain
// is assumed. The upstream service is permissive about the character set,
// so none is enforced here.
func ParseMailbox(raw string) (local, domain string) {
	if i := strings.Index(raw, "@"); i >= 0 {
		return strings.ToLower(strings.TrimSpace(raw[:i])),
			strings.ToLower(strings.TrimSpace(raw[i+1:]))
	}
	return strings.ToLower(strings.TrimSpace(raw)), DefaultDomain
}

const mailboxAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomMailbox returns a random lowercase alphanumeric mailbox
// name. Length is clamped to [6,32].
func GenerateRandomMailbox(length int) string {
	if length < 6 {
		length = 6
	}
	if length > 32 {
		length = 32
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = mailboxAlphabet[rand.Intn(len(mailboxAlphabet))]
	}
	return strings.ToLower(string(b))
}
