package form

import "sort"

// Errors maps a field name to its ordered validation messages.
// Fields that passed are absent.
type Errors map[string][]string

// OK returns true if no field has messages.
func (e Errors) OK() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Field returns the messages for a field, or nil.
func (e Errors) Field(name string) []string {
	return e[name]
}

// Fields returns the names of failing fields in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name, msgs := range e {
		if len(msgs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Schema is an ordered rule table of field -> validators.
//
//	s := form.NewSchema().
//	    Field("name", form.Required("Name is required")).
//	    Field("email", form.Email(""))
//
// A Schema is immutable once shared; build it fully before use.
type Schema struct {
	order []string
	rules map[string][]Validator
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{rules: make(map[string][]Validator)}
}

// Field appends validators for a field. Declaring the same field twice adds
// to its rules and keeps its original position.
func (s *Schema) Field(name string, validators ...Validator) *Schema {
	if _, ok := s.rules[name]; !ok {
		s.order = append(s.order, name)
	}
	s.rules[name] = append(s.rules[name], validators...)
	return s
}

// Fields returns the field names in declaration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.order...)
}

// Has reports whether the schema declares the field.
func (s *Schema) Has(name string) bool {
	_, ok := s.rules[name]
	return ok
}

// ValidateField runs every rule of one field and returns all messages in
// rule order. A nil result means the value passed.
func (s *Schema) ValidateField(name, value string) []string {
	var msgs []string
	for _, v := range s.rules[name] {
		if err := v.Validate(value); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

// Validate checks every declared field independently. Missing values are
// validated as the empty string. Validate has no side effects.
func (s *Schema) Validate(values map[string]string) Errors {
	errs := make(Errors)
	for _, name := range s.order {
		if msgs := s.ValidateField(name, values[name]); len(msgs) > 0 {
			errs[name] = msgs
		}
	}
	return errs
}
