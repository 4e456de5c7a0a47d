package protocol

import (
	"bytes"
	"encoding/json"
)

// MessageType identifies the type of server message.
type MessageType string

// Message type constants.
const (
	MessageRender MessageType = "render" // Replacement markup for the form root
	MessageError  MessageType = "error"  // Event rejected
	MessagePong   MessageType = "pong"   // Reply to ping
)

// Message is a server-to-client message.
type Message struct {
	// Seq echoes the event that caused the message. Zero for unsolicited
	// messages.
	Seq  uint64      `json:"seq"`
	Type MessageType `json:"type"`

	// HTML is set for render messages.
	HTML string `json:"html,omitempty"`

	// Code and Message are set for error messages.
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// NewRender creates a render message.
func NewRender(seq uint64, html string) *Message {
	return &Message{Seq: seq, Type: MessageRender, HTML: html}
}

// NewError creates an error message.
func NewError(seq uint64, code ErrorCode, msg string) *Message {
	return &Message{Seq: seq, Type: MessageError, Code: code, Message: msg}
}

// NewPong creates a pong message.
func NewPong(seq uint64) *Message {
	return &Message{Seq: seq, Type: MessagePong}
}

// EncodeMessage encodes a Message to a JSON frame. Markup is not
// HTML-escaped.
func EncodeMessage(m *Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeMessage decodes a server frame. It is used by clients and tests.
func DecodeMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
