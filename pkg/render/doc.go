// Package render provides server-side rendering of VNode trees to HTML.
//
// The renderer produces deterministic markup: attributes are emitted in
// sorted order, text and attribute values are escaped, void elements have
// no closing tag and boolean attributes render as bare names. Identical
// trees always yield identical bytes, so a session can compare or resend
// fragments freely.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
// RenderPage wraps a fragment in a complete document. When SocketURL is
// set, the fragment is mounted in an element carrying data-contact-root and
// the thin client script is loaded; otherwise the page is plain HTML and
// forms post normally.
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:     "Contact us",
//	    Body:      contact.View(state),
//	    SocketURL: "/ws",
//	})
//
// # Security
//
// All text content is escaped by default. Raw HTML can be inserted using
// KindRaw nodes, but should only be used with trusted content.
package render
