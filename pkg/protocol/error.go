package protocol

import "errors"

// Decoding errors. DecodeEvent wraps these so callers can match with
// errors.Is.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame too large")
	ErrMalformed        = errors.New("protocol: malformed frame")
	ErrUnknownEventType = errors.New("protocol: unknown event type")
	ErrMissingField     = errors.New("protocol: event requires a field")
	ErrValueTooLong     = errors.New("protocol: value too long")
)

// ErrorCode identifies the type of error reported to the client.
type ErrorCode string

const (
	ErrCodeInvalidFrame   ErrorCode = "invalid_frame"   // Malformed or oversized frame
	ErrCodeInvalidEvent   ErrorCode = "invalid_event"   // Well-formed but unusable event
	ErrCodeUnknownField   ErrorCode = "unknown_field"   // Field not in the form
	ErrCodeRateLimited    ErrorCode = "rate_limited"    // Event queue full
	ErrCodeSessionExpired ErrorCode = "session_expired" // Session closed server-side
	ErrCodeServerError    ErrorCode = "server_error"    // Internal server error
)

// CodeFor maps a decoding error to the code sent to the client.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFrameTooLarge), errors.Is(err, ErrMalformed):
		return ErrCodeInvalidFrame
	case errors.Is(err, ErrUnknownEventType), errors.Is(err, ErrMissingField), errors.Is(err, ErrValueTooLong):
		return ErrCodeInvalidEvent
	default:
		return ErrCodeServerError
	}
}
