package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotConfigured indicates that required upstream credentials are absent.
var ErrNotConfigured = errors.New("not configured")

// ErrAuth indicates that every credential-acquisition attempt failed.
var ErrAuth = errors.New("upstream auth failed")

// ErrUpstream indicates a non-2xx response from an upstream API.
var ErrUpstream = errors.New("upstream request failed")

// ErrNoRates indicates that the upstream succeeded but no usable rate survived.
var ErrNoRates = errors.New("no rates")

// UpstreamError carries the upstream status code and response body for
// operator logs. It is never relayed to the end client.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
	Kind   error
}

// Error renders the upstream failure including status and a body excerpt.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v: status=%d body=%s", e.Op, e.Kind, e.Status, excerpt(e.Body))
}

// Unwrap exposes the error kind for errors.Is matching.
func (e *UpstreamError) Unwrap() error { return e.Kind }

func excerpt(s string) string {
	const max = 256
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
