package services

import (
	"context"
	"strings"

	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// AdminService handles the admin settings surface
type AdminService struct {
	profiles *repository.ProfileRepository
	settings *repository.SettingsRepository
}

// NewAdminService creates a new admin service
func NewAdminService(profiles *repository.ProfileRepository, settings *repository.SettingsRepository) *AdminService {
	return &AdminService{profiles: profiles, settings: settings}
}

// Settings lists every registered creator plus the current featured
// selection. Usernames whose profile record is missing are skipped.
func (s *AdminService) Settings(ctx context.Context) (string, []models.AdminUserSummary, error) {
	usernames, err := s.profiles.Usernames(ctx)
	if err != nil {
		return "", nil, err
	}
	featured, err := s.settings.FeaturedUsername(ctx)
	if err != nil {
		return "", nil, err
	}

	users := make([]models.AdminUserSummary, 0, len(usernames))
	for _, username := range usernames {
		profile, err := s.profiles.Profile(ctx, username)
		if err != nil {
			return "", nil, err
		}
		if profile == nil {
			continue
		}
		role := profile.Role
		if role == "" {
			role = models.RoleMember
		}
		users = append(users, models.AdminUserSummary{
			Username:    profile.Username,
			Role:        role,
			PartnerName: profile.PartnerName,
			CreatedAt:   profile.CreatedAt,
		})
	}

	return featured, users, nil
}

// SetFeatured points the global featured selection at username. The
// target must exist; last write wins for all visitors at once.
func (s *AdminService) SetFeatured(ctx context.Context, username string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	if normalized == "" {
		return "", ErrInvalidUsername
	}

	profile, err := s.profiles.Profile(ctx, normalized)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrUserNotFound
	}

	if err := s.settings.SetFeaturedUsername(ctx, normalized); err != nil {
		return "", err
	}

	log.Info().Str("username", normalized).Msg("Featured creator updated")

	return normalized, nil
}
