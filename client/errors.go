package client

import (
	"fmt"
	"net/http"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
)

// HTTPError is returned for non-2xx responses. The response body text is
// preserved so callers can surface the API's own error message.
type HTTPError struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int

	// Status is the status line text, e.g. "404 Not Found".
	Status string

	// Body is the response body text, possibly empty.
	Body string
}

// Error formats the status and body into one message.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %s", e.Status)
	}
	return fmt.Sprintf("API error: %s: %s", e.Status, e.Body)
}

// Retriable reports whether the status warrants a retry: HTTP 429 or any 5xx.
func (e *HTTPError) Retriable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Is maps well-known statuses onto the package sentinel errors so callers can
// use errors.Is without inspecting status codes.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case scerrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case scerrors.ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}
