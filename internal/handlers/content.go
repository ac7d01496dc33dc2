package handlers

import (
	"encoding/json"
	"net/http"

	"valentine-backend/internal/middleware"
	"valentine-backend/internal/models"
	"valentine-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ContentHandler handles day-content reads and writes
type ContentHandler struct {
	content *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Get handles GET /day-content/{username}/{day}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	day, ok := models.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		respondError(w, "Invalid day", http.StatusBadRequest)
		return
	}

	content, err := h.content.Get(r.Context(), username, day)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to get day content")
		respondError(w, "Failed to get day content", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"content": content})
}

// Update handles PUT /day-content/{day}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	day, ok := models.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		respondError(w, "Invalid day", http.StatusBadRequest)
		return
	}

	var updates models.DayContent
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	content, err := h.content.Update(r.Context(), id.Username, day, updates)
	if err != nil {
		log.Error().Err(err).Str("username", id.Username).Msg("Failed to update day content")
		respondError(w, "Failed to update day content", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"content": content,
	})
}
