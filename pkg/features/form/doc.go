// Package form provides schema validation and form state handling.
//
// # Overview
//
// A Schema is an ordered rule table mapping each field to its validators.
// Validation is a pure function of the input values: every field is checked,
// there is no short-circuit, and failures are returned as data (Errors),
// never as Go errors.
//
// A Form owns the mutable state of one rendered form: each field's value,
// touched flag and last validation messages, plus whether the form has been
// submitted successfully.
//
// # Basic Usage
//
//	schema := form.NewSchema().
//	    Field("name", form.Required("Name is required")).
//	    Field("email", form.Email("Invalid email address")).
//	    Field("message", form.MinLength(10, "Message must be at least 10 characters"))
//
//	f := form.New(schema)
//	f.Set("name", "Jane Doe")
//	f.Blur("name")
//	if errs, ok := f.Submit(); !ok {
//	    fmt.Println(errs.Fields()) // [email message]
//	}
//
// # Validation
//
// The package includes built-in validators for common patterns:
//
//   - Required: non-empty after trimming whitespace
//   - MinLength/MaxLength: rune-count constraints
//   - Email: local@domain.tld shape
//   - Pattern: regular expression matching
//   - OneOf: enumerated values
//   - Custom: user-defined predicate
package form
