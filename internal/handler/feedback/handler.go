package feedback

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/myrecovery365/sobrio/backend/internal/identity"
	"github.com/myrecovery365/sobrio/backend/internal/store"
	"github.com/myrecovery365/sobrio/backend/pkg/utils"
)

// Handler records user feedback into durable storage.
type Handler struct {
	repo store.Repository
	ids  *identity.Manager
}

func New(repo store.Repository, ids *identity.Manager) *Handler {
	return &Handler{repo: repo, ids: ids}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.handleSubmit)
	r.Get("/feedback", h.handleRecent)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Rating < 0 || payload.Rating > 5 {
		utils.RespondError(w, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}
	if payload.Rating == 0 && payload.Comment == "" {
		utils.RespondError(w, http.StatusBadRequest, "feedback needs a rating or a comment")
		return
	}

	sessionID, _ := h.ids.SessionID(r)

	err := h.repo.SaveFeedback(r.Context(), store.Feedback{
		SessionID: sessionID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	})
	if err != nil {
		log.Printf("[feedback] save failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListRecentFeedback(r.Context(), 50)
	if err != nil {
		log.Printf("[feedback] list failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	if records == nil {
		records = []store.Feedback{}
	}
	utils.RespondJSON(w, http.StatusOK, records)
}
