package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"valentine-backend/internal/services"

	"github.com/rs/zerolog/log"
)

type contextKey string

const identityKey contextKey = "identity"

// AccessToken extracts the caller's session token. X-User-Token takes
// precedence: it carries the user token when the Authorization header
// is reserved for a gateway API key.
func AccessToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get("X-User-Token")); token != "" {
		return token
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Auth resolves the access token to a creator identity and stores it in
// the request context. Requests without a resolvable identity never
// reach the protected handlers.
func Auth(accounts *services.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AccessToken(r)
			if token == "" {
				respondError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			id, err := accounts.ResolveIdentity(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrUnauthorized):
					respondError(w, "Unauthorized", http.StatusUnauthorized)
				case errors.Is(err, services.ErrInvalidSession):
					respondError(w, "Invalid session", http.StatusUnauthorized)
				default:
					// A store failure is not the caller's fault.
					log.Error().Err(err).Msg("Failed to resolve identity")
					respondError(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the resolved identity from context
func GetIdentity(ctx context.Context) *services.Identity {
	id, ok := ctx.Value(identityKey).(*services.Identity)
	if !ok {
		return nil
	}
	return id
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
