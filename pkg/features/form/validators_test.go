package form

import (
	"strings"
	"testing"
)

func TestRequiredValidator(t *testing.T) {
	v := Required("")

	// Empty and whitespace-only values should fail
	for _, s := range []string{"", " ", "   ", "\t\n", "\u00a0"} {
		if err := v.Validate(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}

	// Non-empty values should pass
	for _, s := range []string{"a", " a ", "Jane Doe"} {
		if err := v.Validate(s); err != nil {
			t.Errorf("Expected no error for %q, got: %v", s, err)
		}
	}
}

func TestRequiredValidatorMessage(t *testing.T) {
	err := Required("Name is required").Validate("  ")
	if err == nil || err.Error() != "Name is required" {
		t.Errorf("Expected 'Name is required', got %v", err)
	}

	err = Required("").Validate("")
	if err == nil || err.Error() != "This field is required" {
		t.Errorf("Expected default message, got %v", err)
	}
}

func TestMinLengthValidator(t *testing.T) {
	v := MinLength(3, "")

	// Too short, including empty
	for _, s := range []string{"", "a", "ab"} {
		if err := v.Validate(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}

	// Exactly minimum and longer
	for _, s := range []string{"abc", "abcd"} {
		if err := v.Validate(s); err != nil {
			t.Errorf("Expected no error for %q, got: %v", s, err)
		}
	}

	// Whitespace counts, nothing is trimmed
	if err := v.Validate("   "); err != nil {
		t.Errorf("Expected whitespace to count toward length, got: %v", err)
	}

	// Runes, not bytes
	if err := v.Validate("éé"); err == nil {
		t.Error("Expected 'éé' (2 runes, 4 bytes) to fail MinLength(3)")
	}

	if err := v.Validate("ab"); err.Error() != "Must be at least 3 characters" {
		t.Errorf("Unexpected default message: %q", err.Error())
	}
}

func TestMaxLengthValidator(t *testing.T) {
	v := MaxLength(5, "")

	if err := v.Validate("abc"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if err := v.Validate("abcde"); err != nil {
		t.Errorf("Expected no error at limit, got: %v", err)
	}
	if err := v.Validate("abcdef"); err == nil {
		t.Error("Expected error for 'abcdef' (len 6)")
	}
}

func TestEmailValidator(t *testing.T) {
	v := Email("")

	validEmails := []string{
		"test@example.com",
		"jane@example.com",
		"user.name@domain.org",
		"user+tag@domain.co.uk",
		"o'brien@example.ie",
		"a@b.io",
		"UPPER@EXAMPLE.COM",
		"x-y_z@sub-domain.example.com",
	}

	invalidEmails := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@nodomain.com",
		"spaces in@email.com",
		"two@@example.com",
		".leading@example.com",
		"trailing.@example.com",
		"double..dot@example.com",
		"user@-example.com",
		"user@example.c",
		"user@example..com",
		"user@.example.com",
		"user@example.com.",
		" user@example.com",
	}

	for _, email := range validEmails {
		if err := v.Validate(email); err != nil {
			t.Errorf("Expected '%s' to be valid, got: %v", email, err)
		}
	}

	for _, email := range invalidEmails {
		if err := v.Validate(email); err == nil {
			t.Errorf("Expected '%s' to be invalid", email)
		}
	}

	if err := v.Validate("nope"); err.Error() != "Invalid email address" {
		t.Errorf("Unexpected default message: %q", err.Error())
	}
}

func TestPatternValidator(t *testing.T) {
	v := Pattern(`^\d{5}$`, "Invalid ZIP")

	if err := v.Validate("12345"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if err := v.Validate("1234"); err == nil || err.Error() != "Invalid ZIP" {
		t.Errorf("Expected 'Invalid ZIP', got %v", err)
	}
	if err := v.Validate(""); err == nil {
		t.Error("Expected empty string to fail the pattern")
	}
}

func TestOneOfValidator(t *testing.T) {
	v := OneOf([]string{"sales", "support"}, "")

	if err := v.Validate("sales"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	err := v.Validate("press")
	if err == nil {
		t.Fatal("Expected error for 'press'")
	}
	if !strings.Contains(err.Error(), "sales, support") {
		t.Errorf("Expected options in message, got %q", err.Error())
	}
}

func TestCustomValidator(t *testing.T) {
	v := Custom(func(s string) bool { return !strings.Contains(s, "http") }, "No links please")

	if err := v.Validate("hello"); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if err := v.Validate("see http://x"); err == nil || err.Error() != "No links please" {
		t.Errorf("Expected 'No links please', got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "email", Message: "bad"}
	if err.Error() != "bad" {
		t.Errorf("Expected 'bad', got %q", err.Error())
	}
}
