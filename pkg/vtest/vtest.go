package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/contact/pkg/render"
	"github.com/vango-dev/contact/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string.
// This is useful for asserting on rendered output.
//
// Example:
//
//	html := vtest.RenderToString(contact.View(state))
//	if !strings.Contains(html, "Thanks for your message!") {
//	    t.Error("missing success text")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, view, "aria-invalid", "true")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// Find returns every element in the tree for which match returns true,
// in document order.
func Find(root *vdom.VNode, match func(*vdom.VNode) bool) []*vdom.VNode {
	var found []*vdom.VNode
	root.Walk(func(n *vdom.VNode) bool {
		if n.Kind == vdom.KindElement && match(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// ByID returns the element with the given id, or nil.
func ByID(root *vdom.VNode, id string) *vdom.VNode {
	nodes := Find(root, func(n *vdom.VNode) bool { return prop(n, "id") == id })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ByLabelText returns the control associated with the label whose text is
// exactly text, following the label's for attribute. It returns nil when
// there is no such label or control.
func ByLabelText(root *vdom.VNode, text string) *vdom.VNode {
	labels := Find(root, func(n *vdom.VNode) bool {
		return n.Tag == "label" && strings.TrimSpace(n.TextContent()) == text
	})
	for _, label := range labels {
		if id := prop(label, "for"); id != "" {
			if control := ByID(root, id); control != nil {
				return control
			}
		}
	}
	return nil
}

// ByRole returns every element with the given explicit role.
func ByRole(root *vdom.VNode, role string) []*vdom.VNode {
	return Find(root, func(n *vdom.VNode) bool { return prop(n, "role") == role })
}

// ByButtonText returns the first button whose text is exactly text, or nil.
func ByButtonText(root *vdom.VNode, text string) *vdom.VNode {
	buttons := Find(root, func(n *vdom.VNode) bool {
		return n.Tag == "button" && strings.TrimSpace(n.TextContent()) == text
	})
	if len(buttons) == 0 {
		return nil
	}
	return buttons[0]
}

// AlertTexts returns the text of every role="alert" element in order.
func AlertTexts(root *vdom.VNode) []string {
	var texts []string
	for _, n := range ByRole(root, "alert") {
		texts = append(texts, strings.TrimSpace(n.TextContent()))
	}
	return texts
}

// Prop returns a string attribute of an element, or "" when unset.
func Prop(n *vdom.VNode, key string) string {
	return prop(n, key)
}

func prop(n *vdom.VNode, key string) string {
	if n == nil {
		return ""
	}
	s, _ := n.Props[key].(string)
	return s
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
