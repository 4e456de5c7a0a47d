package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"element without bindings", Div(Class("test")), false},
		{"input with binding", Input(OnInput()), true},
		{"button with click", Button(OnClick("reset")), true},
		{"plain data attribute", Div(Data("field", "name")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeTextContent(t *testing.T) {
	node := Div(P(Text("Thanks ")), Span("for ", Text("writing")))
	if got := node.TextContent(); got != "Thanks for writing" {
		t.Errorf("TextContent() = %q", got)
	}

	var nilNode *VNode
	if nilNode.TextContent() != "" {
		t.Error("nil TextContent should be empty")
	}
}

func TestVNodeWalk(t *testing.T) {
	node := Div(P(Text("a")), Span(Text("b")))

	var tags []string
	node.Walk(func(n *VNode) bool {
		if n.Kind == KindElement {
			tags = append(tags, n.Tag)
		}
		return true
	})
	if len(tags) != 3 || tags[0] != "div" || tags[1] != "p" || tags[2] != "span" {
		t.Errorf("Unexpected walk order: %v", tags)
	}

	visited := 0
	node.Walk(func(n *VNode) bool {
		visited++
		return n.Tag != "p"
	})
	if visited != 2 {
		t.Errorf("Walk should stop early, visited %d", visited)
	}
}
