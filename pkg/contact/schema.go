package contact

import "github.com/vango-dev/contact/pkg/features/form"

// Field names one input of the contact form.
type Field string

// The contact form's fields, in display order.
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Validation messages. These are user-visible and must not change.
const (
	MsgNameRequired    = "Name is required"
	MsgInvalidEmail    = "Invalid email address"
	MsgMessageTooShort = "Message must be at least 10 characters"
)

// MinMessageLength is the minimum message length in characters.
const MinMessageLength = 10

// Fields returns the form's fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldMessage}
}

// ParseField converts a wire name into a Field.
func ParseField(name string) (Field, bool) {
	switch f := Field(name); f {
	case FieldName, FieldEmail, FieldMessage:
		return f, true
	}
	return "", false
}

var schema = form.NewSchema().
	Field(string(FieldName), form.Required(MsgNameRequired)).
	Field(string(FieldEmail), form.Email(MsgInvalidEmail)).
	Field(string(FieldMessage), form.MinLength(MinMessageLength, MsgMessageTooShort))

// Schema returns the contact form's rule table. It is shared and must not
// be extended.
func Schema() *form.Schema {
	return schema
}

// Values is a candidate submission.
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Map returns the values keyed by field name.
func (v Values) Map() map[string]string {
	return map[string]string{
		string(FieldName):    v.Name,
		string(FieldEmail):   v.Email,
		string(FieldMessage): v.Message,
	}
}

// Validate checks all fields at once. An empty result means the values are
// accepted.
func Validate(v Values) form.Errors {
	return schema.Validate(v.Map())
}
