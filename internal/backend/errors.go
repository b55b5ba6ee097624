package backend

import "fmt"

// TransportError wraps a network level failure: connection refused, timeout,
// or an unreadable response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a 5xx response from the backend.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend server error: status %d", e.StatusCode)
}

// ValidationError means the backend considered the request shape malformed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "backend rejected request payload"
}

// ApplicationFailure is a business-rule rejection carrying the backend's
// human-readable reason, e.g. "email already registered".
type ApplicationFailure struct {
	Reason string
}

func (e *ApplicationFailure) Error() string {
	return e.Reason
}
