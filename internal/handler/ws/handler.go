// Package ws exposes the turn pipeline over a websocket so the widget can
// hold one connection instead of posting per message. Each inbound frame
// is one turn; the reply frame carries the same payload as POST /chat.
package ws

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/myrecovery365/sobrio/backend/internal/identity"
	chatservice "github.com/myrecovery365/sobrio/backend/internal/service/chat"
)

type Handler struct {
	chatSvc  *chatservice.Service
	ids      *identity.Manager
	upgrader websocket.Upgrader
}

func New(chatSvc *chatservice.Service, ids *identity.Manager, allowedOrigins []string) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		ids:     ids,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Non-browser clients carry no Origin header.
					return true
				}
				for _, o := range allowedOrigins {
					if o == "*" || o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat", h.handleChat)
}

type inboundMessage struct {
	Message string `json:"message"`
}

type errorFrame struct {
	Error string `json:"error"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	// The session cookie must be set before the 101 goes out.
	sessionID := h.ids.EnsureSession(w, r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		outcome, err := h.chatSvc.HandleTurn(r.Context(), sessionID, in.Message)
		if err != nil {
			frame := errorFrame{Error: "Something went wrong on our end. Please try again in a moment."}
			if errors.Is(err, chatservice.ErrEmptyMessage) {
				frame.Error = "No message provided"
			} else {
				log.Printf("[ws] turn failure for session=%s: %v", sessionID, err)
			}
			if writeErr := conn.WriteJSON(frame); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(outcome); err != nil {
			log.Printf("[ws] write error for session=%s: %v", sessionID, err)
			return
		}
	}
}
