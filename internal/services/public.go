package services

import (
	"context"

	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"
)

// PublicService assembles the unauthenticated page payloads
type PublicService struct {
	profiles *repository.ProfileRepository
	settings *repository.SettingsRepository
	photos   *PhotoService
	content  *ContentService
}

// NewPublicService creates a new public service
func NewPublicService(
	profiles *repository.ProfileRepository,
	settings *repository.SettingsRepository,
	photos *PhotoService,
	content *ContentService,
) *PublicService {
	return &PublicService{
		profiles: profiles,
		settings: settings,
		photos:   photos,
		content:  content,
	}
}

// Profile returns the redacted profile plus every day's photos with
// freshly signed URLs
func (s *PublicService) Profile(ctx context.Context, username string) (*models.PublicProfileView, error) {
	profile, err := s.profiles.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	photos, err := s.photos.AllPhotos(ctx, username)
	if err != nil {
		return nil, err
	}

	return &models.PublicProfileView{
		Profile: profile.Public(),
		Photos:  photos,
	}, nil
}

// FeaturedDay resolves the global featured selection to a single-day
// payload. An unset selection or a dangling target both read as absent.
func (s *PublicService) FeaturedDay(ctx context.Context, day models.Day) (*models.FeaturedView, error) {
	username, err := s.settings.FeaturedUsername(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, ErrNoFeatured
	}

	profile, err := s.profiles.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	photos, err := s.photos.PhotosWithFreshURLs(ctx, username, day)
	if err != nil {
		return nil, err
	}
	content, err := s.content.Get(ctx, username, day)
	if err != nil {
		return nil, err
	}

	return &models.FeaturedView{
		Username:   username,
		Profile:    profile.Public(),
		DayContent: content,
		Photos:     photos,
	}, nil
}
