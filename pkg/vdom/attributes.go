package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaInvalid sets the aria-invalid attribute.
func AriaInvalid(invalid bool) Attr { return attr("aria-invalid", invalid) }

// AriaDescribedBy sets the aria-describedby attribute.
func AriaDescribedBy(id string) Attr { return attr("aria-describedby", id) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Placeholder sets the placeholder attribute.
func Placeholder(p string) Attr { return attr("placeholder", p) }

// Required marks a form control as required.
func Required() Attr { return attr("required", true) }

// NoValidate disables native browser validation on a form.
func NoValidate() Attr { return attr("novalidate", true) }

// Autocomplete sets the autocomplete attribute.
func Autocomplete(v string) Attr { return attr("autocomplete", v) }

// Rows sets the rows attribute of a textarea.
func Rows(n int) Attr { return attr("rows", n) }

// Method sets the method attribute of a form.
func Method(m string) Attr { return attr("method", m) }

// Action sets the action attribute of a form.
func Action(a string) Attr { return attr("action", a) }

// Link and meta attributes

// Href sets the href attribute.
func Href(h string) Attr { return attr("href", h) }

// Rel sets the rel attribute.
func Rel(r string) Attr { return attr("rel", r) }

// Charset sets the charset attribute.
func Charset(c string) Attr { return attr("charset", c) }

// Property sets the property attribute of an OpenGraph meta tag.
func Property(p string) Attr { return attr("property", p) }

// Content sets the content attribute.
func Content(c string) Attr { return attr("content", c) }

// Nonce sets the nonce attribute used by Content-Security-Policy.
func Nonce(n string) Attr { return attr("nonce", n) }
