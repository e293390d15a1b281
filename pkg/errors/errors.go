// Package errors provides common domain error types for the scribe CLI.
//
// This package defines sentinel errors for conditions that callers are expected
// to branch on, such as "authentication required" or "request timed out". Using
// typed sentinels enables consistent error handling with errors.Is() checks.
//
// Usage:
//
//	import scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
//
//	// Return a domain error
//	return nil, scerrors.ErrAuthRequired
//
//	// Check for domain errors
//	if scerrors.IsAuthRequired(err) {
//	    // prompt for login
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for client conditions.
var (
	// ErrAuthRequired indicates an authenticated operation was attempted
	// without a bearer token and no token provider could supply one.
	// Callers must never see an empty result in place of this error.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRequestTimeout indicates a request timed out on every attempt,
	// exhausting the retry budget.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrRateLimited indicates the API returned HTTP 429 and the retry
	// budget was exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoCredentials indicates no stored or extractable credentials exist.
	ErrNoCredentials = errors.New("no credentials stored")

	// ErrUnknownOperation indicates an API operation name (or legacy alias)
	// that does not resolve to any known endpoint.
	ErrUnknownOperation = errors.New("unknown operation")
)

// IsAuthRequired reports whether any error in err's chain is ErrAuthRequired.
func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

// IsRequestTimeout reports whether any error in err's chain is ErrRequestTimeout.
func IsRequestTimeout(err error) bool {
	return errors.Is(err, ErrRequestTimeout)
}

// IsRateLimited reports whether any error in err's chain is ErrRateLimited.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoCredentials reports whether any error in err's chain is ErrNoCredentials.
func IsNoCredentials(err error) bool {
	return errors.Is(err, ErrNoCredentials)
}

// IsUnknownOperation reports whether any error in err's chain is ErrUnknownOperation.
func IsUnknownOperation(err error) bool {
	return errors.Is(err, ErrUnknownOperation)
}
