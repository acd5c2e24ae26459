// Package web embeds the two HTML pages the server ships: the trip creation
// form and the per-trip chat page. Serving them from the binary means the
// pages and the running code are always in sync.
package web

import _ "embed"

// IndexHTML is the trip creation page served at /.
//
//go:embed static/index.html
var IndexHTML []byte

// ChatHTML is the chat page served at /trips/{id} for browser requests.
//
//go:embed static/chat.html
var ChatHTML []byte
