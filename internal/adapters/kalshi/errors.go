package kalshi

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials marks a client built without an access key or
// private key. Configuration problems are fatal and never retried.
var ErrMissingCredentials = errors.New("kalshi: credentials are not configured")

// ThrottledError is returned when the API kept answering 429 after the
// bounded retry budget was spent.
type ThrottledError struct {
	Path    string
	Retries int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("kalshi: %s throttled after %d retries", e.Path, e.Retries)
}

// UpstreamError is any non-success, non-429 HTTP response. It carries the
// status and body for context and is surfaced immediately, never retried.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("kalshi: %s %s failed with %s: %s", e.Method, e.Path, e.Status, e.Body)
}
