// Package vtest provides testing helpers for rendered views.
//
// Render assertions check the HTML a VNode tree produces:
//
//	vtest.ExpectContains(t, contact.View(state), "Thanks for your message!")
//	vtest.ExpectNotContains(t, contact.View(state), `role="alert"`)
//
// Accessibility queries find nodes the way a user would, by the visible
// label of a control, by button text or by role:
//
//	email := vtest.ByLabelText(view, "Email")
//	submit := vtest.ByButtonText(view, "Submit")
//	alerts := vtest.AlertTexts(view) // ["Invalid email address"]
package vtest
