package clientdist

import _ "embed"

// ContactJS is the thin client that forwards form events over the
// WebSocket and swaps in server-rendered markup.
//
// It is served at "/_contact/client.js".
//
//go:embed contact.js
var ContactJS []byte
