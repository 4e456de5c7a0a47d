// Package vdom provides the in-memory node tree used to describe markup.
//
// Views build a VNode tree with variadic factory functions and hand it to the
// render package, which turns it into HTML:
//
//	Div(Class("field"),
//	    Label(For("email"), Text("Email")),
//	    Input(ID("email"), Name("email"), Type("email"), OnInput(), OnBlur()),
//	)
//
// Client interaction is declared with binding attributes (On, OnInput,
// OnBlur, OnSubmit, OnClick) that render as data-on-* attributes. The thin
// client reads them and forwards events to the server session.
package vdom
