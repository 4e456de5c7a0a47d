package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EventType identifies the type of client event.
type EventType string

// Event type constants.
const (
	EventInput  EventType = "input"  // Field value changed
	EventBlur   EventType = "blur"   // Field lost focus
	EventSubmit EventType = "submit" // Submit control activated
	EventReset  EventType = "reset"  // "Send another" activated
	EventPing   EventType = "ping"   // Keepalive
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventInput, EventBlur, EventSubmit, EventReset, EventPing:
		return true
	}
	return false
}

// NeedsField reports whether events of this type must name a field.
func (t EventType) NeedsField() bool {
	return t == EventInput || t == EventBlur
}

// Event is a client-to-server event.
type Event struct {
	// Seq is assigned by the client and echoed in the reply.
	Seq uint64 `json:"seq"`

	Type  EventType `json:"type"`
	Field string    `json:"field,omitempty"`
	Value string    `json:"value,omitempty"`
}

// String returns a short description for logs. The value is omitted.
func (e *Event) String() string {
	if e.Field != "" {
		return fmt.Sprintf("%s(%s)#%d", e.Type, e.Field, e.Seq)
	}
	return fmt.Sprintf("%s#%d", e.Type, e.Seq)
}

// EncodeEvent encodes an Event to a JSON frame.
func EncodeEvent(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent decodes and checks a client frame with the default limits.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventWithLimits(data, DefaultLimits())
}

// DecodeEventWithLimits decodes and checks a client frame.
func DecodeEventWithLimits(data []byte, limits Limits) (*Event, error) {
	if limits.FrameSize > 0 && len(data) > limits.FrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var e Event
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	if !e.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	if e.Type.NeedsField() {
		if e.Field == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, e.Type)
		}
		if len(e.Field) > MaxFieldNameLength {
			return nil, fmt.Errorf("%w: field name", ErrValueTooLong)
		}
	}
	if limits.ValueBytes > 0 && len(e.Value) > limits.ValueBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrValueTooLong, len(e.Value))
	}

	return &e, nil
}
