package handlers

import (
	"errors"
	"net/http"

	"valentine-backend/internal/models"
	"valentine-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PublicHandler handles the unauthenticated page endpoints
type PublicHandler struct {
	public *services.PublicService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(public *services.PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

// Health handles GET /health
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Profile handles GET /public/{username}
func (h *PublicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	view, err := h.public.Profile(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to get public profile")
		respondError(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// Featured handles GET /featured/{day}
func (h *PublicHandler) Featured(w http.ResponseWriter, r *http.Request) {
	day, ok := models.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		respondError(w, "Invalid day", http.StatusBadRequest)
		return
	}

	view, err := h.public.FeaturedDay(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFeatured):
			respondError(w, "No featured creator configured", http.StatusNotFound)
		case errors.Is(err, services.ErrUserNotFound):
			respondError(w, "Featured creator not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Str("day", string(day)).Msg("Failed to get featured page")
			respondError(w, "Failed to get featured page", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, view)
}
