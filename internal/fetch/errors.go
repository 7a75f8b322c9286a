package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by *FetchError through errors.Is.
var (
	// ErrStatus matches failures where the server answered with a non-2xx status.
	ErrStatus = errors.New("unexpected HTTP status")

	// ErrTransport matches network failures, bad URLs and unsupported schemes.
	ErrTransport = errors.New("transport failure")

	// ErrUnsupportedURL is wrapped when the URL is not absolute http or https.
	ErrUnsupportedURL = errors.New("unsupported URL: must be absolute http or https")

	// ErrTooManyRedirects is wrapped when the redirect limit is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Kind classifies a fetch failure.
type Kind string

const (
	// KindStatus is a non-2xx response.
	KindStatus Kind = "status"
	// KindTransport is any failure before a status was received, or while
	// reading the body.
	KindTransport Kind = "transport"
)

// FetchError is the only error a Fetcher returns.
//
// Design decision: We use one typed error with a Kind rather than two error
// types, so callers can use errors.As once to reach the URL and status code,
// and errors.Is with ErrStatus or ErrTransport to branch on the kind.
type FetchError struct {
	// Kind is status or transport.
	Kind Kind
	// StatusCode is set for KindStatus.
	StatusCode int
	// URL is the requested URL.
	URL string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %s failure", e.URL, e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrTransport:
		return e.Kind == KindTransport
	default:
		return false
	}
}

func statusError(url string, code int) *FetchError {
	return &FetchError{Kind: KindStatus, StatusCode: code, URL: url}
}

func transportError(url string, err error) *FetchError {
	return &FetchError{Kind: KindTransport, URL: url, Err: err}
}
