package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryProtocol   Category = "protocol"
	CategoryInbox      Category = "inbox"
	CategoryServer     Category = "server"
	CategoryValidation Category = "validation"
	CategoryCLI        Category = "cli"
)

// ContactError is a structured error with a code, an explanation and a
// suggested fix.
type ContactError struct {
	// Code is a unique error identifier (e.g., "C101").
	Code string

	// Category is the error type (config, inbox, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Key names the offending config key or payload field, if any.
	Key string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ContactError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Key)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ContactError) Unwrap() error {
	return e.Wrapped
}

// WithKey records the config key or field the error is about.
func (e *ContactError) WithKey(key string) *ContactError {
	e.Key = key
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ContactError) WithSuggestion(s string) *ContactError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ContactError) WithDetail(d string) *ContactError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ContactError) Wrap(err error) *ContactError {
	e.Wrapped = err
	return e
}

// New creates a ContactError from a registered error code.
func New(code string) *ContactError {
	template, ok := registry[code]
	if !ok {
		return &ContactError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ContactError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new ContactError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ContactError {
	return &ContactError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ContactError. Errors that already
// are a ContactError are returned unchanged.
func FromError(err error, code string) *ContactError {
	if err == nil {
		return nil
	}
	var ce *ContactError
	if As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}
