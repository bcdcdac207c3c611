package gateway

import (
	"errors"
	"fmt"
)

// Remote call failure kinds.
//
// Design decision: We expose sentinel errors for the failure kinds
// callers branch on, and surface them through APIError.Unwrap. This
// keeps a single error value per failed call while still supporting
// errors.Is for programmatic handling.
var (
	// ErrAuth is matched when the server rejects the credentials or the
	// session token (HTTP 401/403), or when a call requiring a token is
	// attempted without one.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound is matched when the target resource does not exist
	// remotely (HTTP 404), such as deleting an already-deleted story.
	ErrNotFound = errors.New("resource not found")
)

// APIError describes a failed remote call. Every non-2xx response and
// every transport failure is reported as an *APIError so the UI layer
// has one shape to render.
type APIError struct {
	// StatusCode is the HTTP status of the response, or 0 when the
	// request never produced a response (transport failure).
	StatusCode int

	// Message is the server-provided error message, or a description of
	// the transport failure.
	Message string

	// cause is the underlying transport error, if any. Kept so that
	// context cancellation still matches errors.Is(err, context.Canceled).
	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the failure onto a sentinel error kind.
// Transport failures unwrap to their cause instead so cancellation and
// deadline errors remain matchable.
func (e *APIError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	switch e.StatusCode {
	case 401, 403:
		return ErrAuth
	case 404:
		return ErrNotFound
	}
	return nil
}
