// Package web embeds the static chat widget served at /chat-ui.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed static/chat.html
var chatUI []byte

// ChatUIHandler serves the embedded chat widget.
func ChatUIHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(chatUI)
	})
}
