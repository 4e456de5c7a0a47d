package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator is an interface for form field validation.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error with a message if invalid.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
// Its Error() text is the human-readable message shown next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ----------------------------------------------------------------------------
// String Validators
// ----------------------------------------------------------------------------

// Required validates that the value is non-empty after trimming whitespace.
func Required(msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength validates that a string has at least n characters.
// Characters are counted as runes and the value is not trimmed, so the
// empty string fails for any n > 0.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if utf8.RuneCountInString(value) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength validates that a string has at most n characters.
func MaxLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if utf8.RuneCountInString(value) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern validates that a string matches the given regular expression.
// The empty string is checked like any other value.
func Pattern(pattern string, msg string) Validator {
	re := regexp.MustCompile(pattern)
	if msg == "" {
		msg = "Invalid format"
	}
	return ValidatorFunc(func(value string) error {
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// emailPattern accepts local@label.label.tld. The local part may hold letters,
// digits and _ ' + - . but must not end with a dot; leading dots and ".." runs
// are rejected separately because RE2 has no lookahead.
var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`,
)

// IsEmail reports whether s has the shape of an email address.
func IsEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// Email validates that the value is a valid email address.
// Empty values fail; combine with Required only for a distinct message.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	return ValidatorFunc(func(value string) error {
		if !IsEmail(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// OneOf validates that the value is one of the allowed options.
func OneOf(options []string, msg string) Validator {
	if msg == "" {
		msg = "Must be one of: " + strings.Join(options, ", ")
	}
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return ValidatorFunc(func(value string) error {
		if _, ok := allowed[value]; !ok {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Custom creates a validator from a predicate. The predicate returns true
// when the value is acceptable.
func Custom(ok func(value string) bool, msg string) Validator {
	if msg == "" {
		msg = "Invalid value"
	}
	return ValidatorFunc(func(value string) error {
		if !ok(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}
