package handlers

import (
	"io"
	"net/http"
	"strconv"

	"valentine-backend/internal/middleware"
	"valentine-backend/internal/models"
	"valentine-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps the photo file at 5MB. The body reader gets a
// little headroom on top for multipart framing so a file right at the
// cap still fits; the file itself is checked against the cap exactly.
const (
	maxUploadBytes    = 5 << 20
	multipartOverhead = 64 << 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// PhotoHandler handles photo upload and deletion
type PhotoHandler struct {
	photos *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload handles POST /upload/{day}
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	day, ok := models.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		respondError(w, "Invalid day", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, "Invalid upload: expected a multipart file of at most 5MB", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !allowedImageTypes[contentType] {
		respondError(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read upload")
		respondError(w, "Failed to upload photo", http.StatusInternalServerError)
		return
	}
	if len(data) > maxUploadBytes {
		respondError(w, "File exceeds the 5MB limit", http.StatusBadRequest)
		return
	}

	photo, err := h.photos.Upload(r.Context(), id.Username, day, header.Filename, contentType, data)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("username", id.Username).
				Str("day", string(day)).
				Msg("Failed to upload photo")
			respondError(w, "Failed to upload photo", status)
			return
		}
		respondError(w, err.Error(), status)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photo":   photo,
	})
}

// Delete handles DELETE /photo/{day}/{photoId}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	day, ok := models.ParseDay(chi.URLParam(r, "day"))
	if !ok {
		respondError(w, "Invalid day", http.StatusBadRequest)
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil {
		respondError(w, "Photo not found", http.StatusNotFound)
		return
	}

	if err := h.photos.Delete(r.Context(), id.Username, day, photoID); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("username", id.Username).
				Int64("photo_id", photoID).
				Msg("Failed to delete photo")
			respondError(w, "Failed to delete photo", status)
			return
		}
		respondError(w, err.Error(), status)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
