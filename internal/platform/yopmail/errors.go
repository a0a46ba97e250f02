package yopmail

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecipient means the recipient failed the local domain
	// checks; no network request was made.
	ErrInvalidRecipient = errors.New("invalid recipient domain")

	// ErrUnsupported means the operation is not available with the
	// current client configuration.
	ErrUnsupported = errors.New("unsupported operation")
)

// StatusError is a non-2xx response. It carries the status code and the
// response body verbatim for operational triage.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// AuthError is a soft failure: the transport succeeded (2xx) but the
// service's own success markers are absent from the body.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
