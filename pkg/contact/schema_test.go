package contact

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vango-dev/contact/pkg/features/form"
)

func TestValidateAccepts(t *testing.T) {
	if errs := Validate(validValues); !errs.OK() {
		t.Errorf("Expected valid values to pass, got %v", errs)
	}
}

func TestValidateExactMessages(t *testing.T) {
	cases := []struct {
		name   string
		values Values
		want   form.Errors
	}{
		{
			name:   "all empty",
			values: Values{},
			want: form.Errors{
				"name":    {MsgNameRequired},
				"email":   {MsgInvalidEmail},
				"message": {MsgMessageTooShort},
			},
		},
		{
			name:   "whitespace name",
			values: Values{Name: " \t ", Email: validValues.Email, Message: validValues.Message},
			want:   form.Errors{"name": {MsgNameRequired}},
		},
		{
			name:   "email without tld",
			values: Values{Name: "Jane", Email: "jane@example", Message: validValues.Message},
			want:   form.Errors{"email": {MsgInvalidEmail}},
		},
		{
			name:   "nine characters",
			values: Values{Name: "Jane", Email: validValues.Email, Message: "123456789"},
			want:   form.Errors{"message": {MsgMessageTooShort}},
		},
		{
			name:   "ten spaces count",
			values: Values{Name: "Jane", Email: validValues.Email, Message: strings.Repeat(" ", 10)},
			want:   form.Errors{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Validate(tc.values)); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, ok := ParseField(string(f))
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %q, %v", f, got, ok)
		}
	}
	if _, ok := ParseField("phone"); ok {
		t.Error("Expected phone to be rejected")
	}
}

func TestSchemaFieldOrder(t *testing.T) {
	want := []string{"name", "email", "message"}
	if got := Schema().Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestValidationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: blank names always yield exactly the required message
	properties.Property("blank name is required", prop.ForAll(
		func(name string) bool {
			v := validValues
			v.Name = name
			return reflect.DeepEqual(Validate(v), form.Errors{"name": {MsgNameRequired}})
		},
		gen.RegexMatch(`^[ \t\r\n]{0,8}$`),
	))

	// Property: strings without "@" are never emails
	properties.Property("email without at sign is invalid", prop.ForAll(
		func(email string) bool {
			v := validValues
			v.Email = email
			return reflect.DeepEqual(Validate(v), form.Errors{"email": {MsgInvalidEmail}})
		},
		gen.AlphaString(),
	))

	// Property: a domain without a dot is never an email
	properties.Property("email without domain dot is invalid", prop.ForAll(
		func(email string) bool {
			v := validValues
			v.Email = email
			return reflect.DeepEqual(Validate(v), form.Errors{"email": {MsgInvalidEmail}})
		},
		gen.RegexMatch(`^[a-z]{1,8}@[a-z]{1,8}$`),
	))

	// Property: simple local@domain.tld addresses are accepted
	properties.Property("well-formed email is valid", prop.ForAll(
		func(email string) bool {
			v := validValues
			v.Email = email
			return Validate(v).OK()
		},
		gen.RegexMatch(`^[a-z0-9]{1,8}@[a-z]{1,8}\.[a-z]{2,4}$`),
	))

	// Property: messages shorter than the minimum yield exactly one message
	properties.Property("short message is rejected", prop.ForAll(
		func(msg string) bool {
			if utf8.RuneCountInString(msg) >= MinMessageLength {
				return true
			}
			v := validValues
			v.Message = msg
			return reflect.DeepEqual(Validate(v), form.Errors{"message": {MsgMessageTooShort}})
		},
		gen.RegexMatch(`^[a-zA-Z0-9 ]{0,9}$`),
	))

	// Property: validation is idempotent
	properties.Property("validate is idempotent", prop.ForAll(
		func(name, email, msg string) bool {
			v := Values{Name: name, Email: email, Message: msg}
			return reflect.DeepEqual(Validate(v), Validate(v))
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	// Property: every failing field is reported, there is no short-circuit
	properties.Property("errors cover every invalid field", prop.ForAll(
		func(name, email, msg string) bool {
			v := Values{Name: name, Email: email, Message: msg}
			errs := Validate(v)
			for _, f := range Fields() {
				value := v.Map()[string(f)]
				fails := len(Schema().ValidateField(string(f), value)) > 0
				if fails != (len(errs[string(f)]) > 0) {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
		gen.RegexMatch(`^(x@y|jane@example\.com)?$`),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestSubmitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: after any accepted submit, reset restores the initial state
	properties.Property("reset after submit restores initial state", prop.ForAll(
		func(name, local string) bool {
			c := NewController()
			c.SetField(FieldName, name)
			c.SetField(FieldEmail, local+"@example.com")
			c.SetField(FieldMessage, validValues.Message)
			if _, ok := c.Submit(); !ok {
				return false
			}
			c.Reset()
			return cmp.Equal(initialState(), c.State())
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.RegexMatch(`^[a-z]{1,10}$`),
	))

	// Property: submit touches every field whatever the outcome
	properties.Property("submit touches all fields", prop.ForAll(
		func(name, email, msg string) bool {
			c := NewController()
			c.SetField(FieldName, name)
			c.SetField(FieldEmail, email)
			c.SetField(FieldMessage, msg)
			c.Submit()
			s := c.State()
			return s.Name.Touched && s.Email.Touched && s.Message.Touched
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
