package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"valentine-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// statusForError maps the service error taxonomy onto HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidSession),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrInvalidPasscode):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrNoFeatured):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrPhotoLimit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
