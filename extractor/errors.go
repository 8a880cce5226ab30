package extractor

import (
	"errors"
	"fmt"

	"github.com/polis-analysis/postmeta/model"
)

// ErrorKind is the closed taxonomy every extraction failure collapses into.
// Adapters must not let lower-level errors cross their boundary unwrapped.
type ErrorKind string

const (
	// Missing or invalid credentials (e.g. no YouTube API key).
	KindAuth ErrorKind = "auth"
	// Content is gated behind a login and no session credentials were supplied.
	KindAuthRequired ErrorKind = "auth_required"
	// The resource does not exist or the post ID could not be resolved.
	KindNotFound ErrorKind = "not_found"
	// Upstream quota exhausted or explicit backoff response.
	KindRateLimit ErrorKind = "rate_limit"
	// The scrape target's structure no longer matches expected markers.
	KindParse ErrorKind = "parse"
	// The outbound call exceeded its bound.
	KindTimeout ErrorKind = "timeout"
	// A required field (post ID) was missing after extraction.
	KindNormalization ErrorKind = "normalization"
	// The classifier could not map the URL to a supported platform.
	KindUnsupportedPlatform ErrorKind = "unsupported_platform"
	// The platform adapter is a declared stub.
	KindNotImplemented ErrorKind = "not_implemented"
)

// Error carries enough context (platform, URL, upstream status) for the UI
// to render a specific user-facing message.
type Error struct {
	Kind       ErrorKind
	Platform   model.Platform
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s [%s] upstream %d: %s", e.Kind, e.Platform, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Platform, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a taxonomy error with a formatted message.
func NewError(kind ErrorKind, platform model.Platform, url, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		Platform: platform,
		URL:      url,
		Message:  fmt.Sprintf(format, args...),
	}
}

// WrapError wraps a lower-level error into the taxonomy, preserving it for
// errors.Is/As chains.
func WrapError(kind ErrorKind, platform model.Platform, url string, err error) *Error {
	return &Error{
		Kind:     kind,
		Platform: platform,
		URL:      url,
		Err:      err,
	}
}

// KindOf reports the taxonomy kind of err, or "" if err is not an
// extraction error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an extraction error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
