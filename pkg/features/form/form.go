package form

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when an operation names a field the schema
// does not declare.
var ErrUnknownField = errors.New("form: unknown field")

// Field is the lifecycle of one input.
type Field struct {
	// Value is the current raw input.
	Value string

	// Touched becomes true once the field has lost focus, or after any submit.
	Touched bool

	// Errors holds the messages from the last validation pass. Empty means
	// valid or not yet validated.
	Errors []string
}

// clone returns a copy that shares no slice with f.
func (f Field) clone() Field {
	if f.Errors != nil {
		f.Errors = append(make([]string, 0, len(f.Errors)), f.Errors...)
	}
	return f
}

// ShowErrors returns true when the field's errors should be displayed.
func (f Field) ShowErrors() bool {
	return f.Touched && len(f.Errors) > 0
}

// Form owns the state of one form instance: per-field value, touched flag
// and errors, plus the submitted flag. It is driven by four operations
// (Set, Blur, Submit, Reset) and is not safe for concurrent use; the owner
// must serialize calls.
type Form struct {
	schema    *Schema
	fields    map[string]Field
	submitted bool
}

// New creates a form for the given schema with every field empty,
// untouched and error-free.
func New(schema *Schema) *Form {
	f := &Form{schema: schema}
	f.Reset()
	return f
}

// Schema returns the schema the form validates against.
func (f *Form) Schema() *Schema {
	return f.schema
}

// Set updates a field's value. It does not validate and does not touch.
func (f *Form) Set(name, value string) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	field.Value = value
	f.fields[name] = field
	return nil
}

// Blur marks a field as touched.
func (f *Form) Blur(name string) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	field.Touched = true
	f.fields[name] = field
	return nil
}

// Submit validates all current values at once. Every field is marked touched
// and receives its messages (empty for fields that passed). The form becomes
// submitted only when no field failed. The returned Errors is owned by the
// caller.
//
// The next state is built aside and swapped in with a single assignment, so
// no reader ever sees a partially validated form.
func (f *Form) Submit() (Errors, bool) {
	errs := f.schema.Validate(f.Values())

	next := make(map[string]Field, len(f.fields))
	for name, field := range f.fields {
		field.Touched = true
		field.Errors = append([]string{}, errs[name]...)
		next[name] = field
	}

	ok := errs.OK()
	f.fields = next
	f.submitted = ok
	return errs, ok
}

// Reset restores the creation-time state. It is valid in any state.
func (f *Form) Reset() {
	fields := make(map[string]Field, len(f.schema.order))
	for _, name := range f.schema.order {
		fields[name] = Field{Errors: []string{}}
	}
	f.fields = fields
	f.submitted = false
}

// Field returns a copy of a field's state. Unknown names return the zero Field.
func (f *Form) Field(name string) Field {
	return f.fields[name].clone()
}

// Values returns the current value of every field.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for name, field := range f.fields {
		values[name] = field.Value
	}
	return values
}

// Get returns the current value of a field.
func (f *Form) Get(name string) string {
	return f.fields[name].Value
}

// FieldErrors returns the messages from the last validation pass for a field.
func (f *Form) FieldErrors(name string) []string {
	return f.Field(name).Errors
}

// HasError returns true if the field has any validation errors.
func (f *Form) HasError(name string) bool {
	return len(f.fields[name].Errors) > 0
}

// IsTouched returns true if the field has been interacted with.
func (f *Form) IsTouched(name string) bool {
	return f.fields[name].Touched
}

// IsSubmitted returns true once a submit found no errors, until Reset.
func (f *Form) IsSubmitted() bool {
	return f.submitted
}
