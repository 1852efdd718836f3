package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/myrecovery365/sobrio/backend/internal/identity"
	chatservice "github.com/myrecovery365/sobrio/backend/internal/service/chat"
	"github.com/myrecovery365/sobrio/backend/pkg/utils"
)

// unexpectedErrorMessage is the generic apology for internal failures.
// Details go to the log, never to the caller.
const unexpectedErrorMessage = "Something went wrong on our end. Please try again in a moment."

// Handler exposes the turn pipeline over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
	ids     *identity.Manager
}

func New(chatSvc *chatservice.Service, ids *identity.Manager) *Handler {
	return &Handler{chatSvc: chatSvc, ids: ids}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/clear-session", h.handleClearSession)
	r.Get("/analytics", h.handleAnalytics)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
		// Input is the legacy field name from an earlier widget; message
		// wins when both are present.
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := payload.Message
	if message == "" {
		message = payload.Input
	}

	sessionID := h.ids.EnsureSession(w, r)

	outcome, err := h.chatSvc.HandleTurn(r.Context(), sessionID, message)
	if err != nil {
		if errors.Is(err, chatservice.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "No message provided")
			return
		}
		log.Printf("[chat] unexpected turn failure for session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, unexpectedErrorMessage)
		return
	}

	utils.RespondJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.ids.SessionID(r); ok {
		if err := h.chatSvc.ClearSession(r.Context(), sessionID); err != nil {
			log.Printf("[chat] clear session failed for session=%s: %v", sessionID, err)
			utils.RespondError(w, http.StatusInternalServerError, unexpectedErrorMessage)
			return
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.chatSvc.Analytics(r.Context())
	if err != nil {
		log.Printf("[chat] analytics failure: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, unexpectedErrorMessage)
		return
	}
	utils.RespondJSON(w, http.StatusOK, analytics)
}
