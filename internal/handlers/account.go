package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"valentine-backend/internal/middleware"
	"valentine-backend/internal/models"
	"valentine-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AccountHandler handles signup, signin and profile requests
type AccountHandler struct {
	accounts *services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type signUpRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	PartnerName   string `json:"partnerName"`
	Role          string `json:"role"`
	AdminPasscode string `json:"adminPasscode"`
}

type signUpResponse struct {
	Success bool           `json:"success"`
	User    signUpUserBody `json:"user"`
}

type signUpUserBody struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PartnerName string `json:"partnerName"`
	Role        string `json:"role"`
}

// SignUp handles POST /signup
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondError(w, "Username, password, and email are required", http.StatusBadRequest)
		return
	}

	profile, err := h.accounts.SignUp(r.Context(), services.SignUpInput{
		Username:      req.Username,
		Password:      req.Password,
		Email:         req.Email,
		PartnerName:   req.PartnerName,
		Role:          req.Role,
		AdminPasscode: req.AdminPasscode,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Signup failed")
			respondError(w, "Signup failed", status)
			return
		}
		respondError(w, err.Error(), status)
		return
	}

	respondJSON(w, http.StatusOK, signUpResponse{
		Success: true,
		User: signUpUserBody{
			Username:    profile.Username,
			Email:       profile.Email,
			PartnerName: profile.PartnerName,
			Role:        profile.Role,
		},
	})
}

type signInRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type signInResponse struct {
	Success     bool                `json:"success"`
	AccessToken string              `json:"accessToken"`
	User        *models.UserProfile `json:"user"`
}

// SignIn handles POST /signin
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		respondError(w, "Username/email and password are required", http.StatusBadRequest)
		return
	}

	token, profile, err := h.accounts.SignIn(r.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, "Invalid email or password. Try password reset if you forgot it.", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Signin failed")
		respondError(w, "Signin failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, signInResponse{
		Success:     true,
		AccessToken: token,
		User:        profile,
	})
}

// GetUser handles GET /user
func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	profile := id.Profile
	if profile == nil {
		profile = &models.UserProfile{Username: id.Username, Email: id.User.Email}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}

// UpdateProfile handles PUT /profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.accounts.UpdateProfile(r.Context(), id, updates)
	if err != nil {
		log.Error().Err(err).Str("username", id.Username).Msg("Failed to update profile")
		respondError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}
