package contact

import "github.com/vango-dev/contact/pkg/features/form"

// Phase is the whole-form state.
type Phase int

const (
	// PhaseEditing accepts input; errors may be visible.
	PhaseEditing Phase = iota
	// PhaseSubmitted shows the confirmation until Reset.
	PhaseSubmitted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// FormField is the lifecycle of one input.
type FormField = form.Field

// State is a snapshot of the contact form.
type State struct {
	Name      FormField
	Email     FormField
	Message   FormField
	Submitted bool
}

// Field returns the state of one field.
func (s State) Field(f Field) FormField {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return FormField{}
}

// Controller owns the state of one rendered contact form.
//
// Controller is not safe for concurrent use. In the server each session's
// event loop is its only caller.
type Controller struct {
	form *form.Form
}

// NewController creates a controller in the initial Editing state.
func NewController() *Controller {
	return &Controller{form: form.New(schema)}
}

// SetField updates one field's draft value without validating it.
func (c *Controller) SetField(name Field, value string) error {
	return c.form.Set(string(name), value)
}

// BlurField marks one field as touched.
func (c *Controller) BlurField(name Field) error {
	return c.form.Blur(string(name))
}

// Submit validates all current values. On success the form moves to
// PhaseSubmitted; otherwise every failing field's messages become visible.
func (c *Controller) Submit() (form.Errors, bool) {
	return c.form.Submit()
}

// Reset returns the form to its creation-time state.
func (c *Controller) Reset() {
	c.form.Reset()
}

// Phase reports the current whole-form state.
func (c *Controller) Phase() Phase {
	if c.form.IsSubmitted() {
		return PhaseSubmitted
	}
	return PhaseEditing
}

// Values returns the current draft values.
func (c *Controller) Values() Values {
	return Values{
		Name:    c.form.Get(string(FieldName)),
		Email:   c.form.Get(string(FieldEmail)),
		Message: c.form.Get(string(FieldMessage)),
	}
}

// State returns a deep copy of the current state.
func (c *Controller) State() State {
	return State{
		Name:      c.form.Field(string(FieldName)),
		Email:     c.form.Field(string(FieldEmail)),
		Message:   c.form.Field(string(FieldMessage)),
		Submitted: c.form.IsSubmitted(),
	}
}
