package fetch

import (
	"errors"
	"fmt"
)

// ErrorKind classifies retrieval failures so callers can branch on them.
type ErrorKind string

const (
	// KindNetwork covers connection, DNS and transport failures.
	KindNetwork ErrorKind = "network"
	// KindTimeout covers requests that exceeded the caller-supplied timeout.
	KindTimeout ErrorKind = "timeout"
	// KindTooManyRedirects is returned when the redirect chain exceeds the hop limit.
	KindTooManyRedirects ErrorKind = "too-many-redirects"
	// KindBlocked is returned when the target path is disallowed by the host's robots policy.
	KindBlocked ErrorKind = "blocked"
	// KindInvalidURL is returned when the requested URL cannot be parsed.
	KindInvalidURL ErrorKind = "invalid-url"
)

// Error is a retrieval failure with a machine-readable kind.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, url string, err error) *Error {
	return &Error{Kind: kind, URL: url, Err: err}
}

// KindOf returns the kind of a retrieval error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsBlocked reports whether err is a robots-policy block.
func IsBlocked(err error) bool {
	return KindOf(err) == KindBlocked
}

// IsTimeout reports whether err is a retrieval timeout.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}
