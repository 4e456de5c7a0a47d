// Package protocol defines the JSON frames exchanged between the thin
// client and the server over a WebSocket.
//
// Every frame is one JSON object in a text message.
//
// Client to server, an Event:
//
//	{"seq":7,"type":"input","field":"email","value":"jane@"}
//	{"seq":8,"type":"blur","field":"email"}
//	{"seq":9,"type":"submit"}
//	{"seq":10,"type":"reset"}
//	{"seq":11,"type":"ping"}
//
// Server to client, a Message carrying the event's seq:
//
//	{"seq":9,"type":"render","html":"<form ...>...</form>"}
//	{"seq":12,"type":"error","code":"invalid_event","message":"..."}
//	{"seq":11,"type":"pong"}
//
// The client applies a render only when its seq is the latest it sent, so
// replies to superseded keystrokes are dropped.
//
// DecodeEvent enforces size limits and rejects unknown event types, unknown
// keys and input or blur events without a field.
package protocol
