package handlers

import (
	"encoding/json"
	"net/http"

	"valentine-backend/internal/middleware"
	"valentine-backend/internal/models"
	"valentine-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AdminHandler handles the admin settings surface
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) *services.Identity {
	id := middleware.GetIdentity(r.Context())
	if id == nil || id.Role() != models.RoleAdmin {
		respondError(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return id
}

// Settings handles GET /admin/settings
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	featured, users, err := h.admin.Settings(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load admin settings")
		respondError(w, "Failed to load admin settings", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"featuredUsername": featured,
		"users":            users,
	})
}

type setFeaturedRequest struct {
	Username string `json:"username"`
}

// SetFeatured handles PUT /admin/featured
func (h *AdminHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req setFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	featured, err := h.admin.SetFeatured(r.Context(), req.Username)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to update featured creator")
			respondError(w, "Failed to update featured creator", status)
			return
		}
		respondError(w, err.Error(), status)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"featuredUsername": featured,
	})
}
