package contact

import (
	"github.com/vango-dev/contact/pkg/features/form"
	. "github.com/vango-dev/contact/pkg/vdom"
)

// FormID is the id of the element View returns in either phase.
const FormID = "contact-form"

// PostPath is where the form posts when no socket is connected.
const PostPath = "/contact"

// Visible texts.
const (
	SubmitText      = "Submit"
	SuccessTitle    = "Thanks for your message!"
	SuccessBody     = "We'll get back to you soon."
	SendAnotherText = "Send another"
	FormLabel       = "Contact form"
)

type fieldSpec struct {
	field        Field
	label        string
	inputType    string
	autocomplete string
	placeholder  string
}

var fieldSpecs = []fieldSpec{
	{FieldName, "Name", "text", "name", "Jane Doe"},
	{FieldEmail, "Email", "email", "email", "you@example.com"},
	{FieldMessage, "Message", "", "off", "How can we help?"},
}

// View renders the contact form for a state. It is a pure function: equal
// states render identical trees.
func View(s State) *VNode {
	if s.Submitted {
		return successView()
	}

	return Form(
		ID(FormID),
		Class("contact-form"),
		AriaLabel(FormLabel),
		Method("post"),
		Action(PostPath),
		NoValidate(),
		OnSubmit(),
		Range(fieldSpecs, func(spec fieldSpec, _ int) *VNode {
			return fieldView(spec, s.Field(spec.field))
		}),
		Button(Type("submit"), Text(SubmitText)),
	)
}

func fieldView(spec fieldSpec, f form.Field) *VNode {
	name := string(spec.field)
	errorID := name + "-error"
	invalid := f.ShowErrors()

	attrs := []Attr{
		ID(name),
		Name(name),
		Data("field", name),
		Autocomplete(spec.autocomplete),
		Placeholder(spec.placeholder),
		Required(),
		AriaInvalid(invalid),
		AttrIf(invalid, AriaDescribedBy(errorID)),
		OnInput(),
		OnBlur(),
	}

	var control *VNode
	if spec.inputType == "" {
		control = Textarea(attrs, Rows(5), Text(f.Value))
	} else {
		control = Input(attrs, Type(spec.inputType), Value(f.Value))
	}

	return Div(
		Class("field"),
		Label(For(name), Text(spec.label)),
		control,
		If(invalid, Div(
			ID(errorID),
			Class("field-errors"),
			Range(f.Errors, func(msg string, _ int) *VNode {
				return P(Role("alert"), Text(msg))
			}),
		)),
	)
}

func successView() *VNode {
	return Section(
		ID(FormID),
		Class("contact-success"),
		Role("status"),
		AriaLive("polite"),
		H2(Text(SuccessTitle)),
		P(Text(SuccessBody)),
		Form(
			Method("post"),
			Action(PostPath),
			Input(Type("hidden"), Name("action"), Value("reset")),
			Button(Type("submit"), OnClick("reset"), Text(SendAnotherText)),
		),
	)
}
