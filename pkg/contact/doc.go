// Package contact implements the contact form: its validation rules, the
// controller that owns one form's state, and the view rendered from it.
//
// The controller moves between two phases:
//
//	Editing   --Submit, all valid-->   Submitted
//	Editing   --Submit, any invalid--> Editing (errors visible)
//	Submitted --Reset-->               Editing (fields cleared)
//
// Validation failures are data. Submit returns them and stores them on the
// fields; nothing in this package returns an error for invalid input.
package contact
