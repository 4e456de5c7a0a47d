package server

import (
	"errors"
	"fmt"
)

// Errors returned by sessions and the submission paths.
var (
	// ErrSessionClosed is returned once a session or the manager has shut down.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrEventQueueFull is returned when a session falls behind and an event is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrMaxSessionsReached refuses a socket; the client sees close code 1013.
	ErrMaxSessionsReached = errors.New("server: too many open forms")

	// ErrNoConnection is returned when a render has no socket to go to.
	ErrNoConnection = errors.New("server: no connection")

	// ErrInboxUnavailable wraps a failure to queue an accepted submission.
	ErrInboxUnavailable = errors.New("server: inbox unavailable")

	// ErrTrailingData rejects an API body holding more than one JSON value.
	ErrTrailingData = errors.New("server: trailing data after JSON object")
)

// SessionError wraps an error with the session and step that failed.
type SessionError struct {
	SessionID string
	Op        string // "write", "render", ...
	Err       error
}

func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("server: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError.
func NewSessionError(sessionID, op string, err error) *SessionError {
	return &SessionError{SessionID: sessionID, Op: op, Err: err}
}
