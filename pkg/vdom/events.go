package vdom

// BindingPrefix is the attribute prefix that marks client event bindings.
// The thin client forwards a DOM event to the server when the target (or an
// ancestor) carries data-on-<event>; the attribute value is the action name.
const BindingPrefix = "data-on-"

// On binds a DOM event to a server action.
//
//	Input(Data("field", "email"), On("input", "input"))
//	→ <input data-field="email" data-on-input="input">
func On(event, action string) Attr { return attr(BindingPrefix+event, action) }

// OnInput forwards input events as "input" actions.
func OnInput() Attr { return On("input", "input") }

// OnBlur forwards focus loss as "blur" actions.
func OnBlur() Attr { return On("blur", "blur") }

// OnSubmit forwards form submission as "submit" actions.
func OnSubmit() Attr { return On("submit", "submit") }

// OnClick forwards clicks as the given action.
func OnClick(action string) Attr { return On("click", action) }
