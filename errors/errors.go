package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across the SDK. Callers match these with errors.Is
// instead of inspecting transport-specific shapes.
var (
	// ErrUnauthenticated signals that the current session is missing,
	// invalid or expired. The top-level command surface is the only place
	// that translates it into a "please log in" prompt.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is reported for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrSessionExpired signals that a previously valid session timed out.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError is a client-side field constraint violation. It blocks
// submission and is never sent to the network.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError covers missing/invalid/expired tokens and failed login or
// refresh. It always matches ErrUnauthenticated via errors.Is.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthenticated
}

// NewAuth creates an AuthError wrapping err (err may be nil).
func NewAuth(message string, err error) *AuthError {
	return &AuthError{Message: message, Err: err}
}

// NetworkError means the request never produced an HTTP response
// (timeout, connection refused, DNS failure). Retryable by the user.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetwork creates a NetworkError for the named operation.
func NewNetwork(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// ServerError is a non-401 HTTP error response. Message carries the
// server-provided explanation when one was present in the body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// NewServer creates a ServerError with an optional server-provided message.
func NewServer(status int, message string) *ServerError {
	return &ServerError{Status: status, Message: message}
}
