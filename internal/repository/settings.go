package repository

import (
	"context"
	"fmt"

	"valentine-backend/internal/kvstore"
)

const featuredUsernameKey = "featured_username"

// SettingsRepository handles global, admin-controlled settings.
// The featured username is a single record with no in-memory cache so
// horizontally scaled instances never serve a stale pointer.
type SettingsRepository struct {
	kv kvstore.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(kv kvstore.Store) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

// FeaturedUsername returns the selected creator, "" when unset
func (r *SettingsRepository) FeaturedUsername(ctx context.Context) (string, error) {
	var username string
	found, err := kvstore.GetInto(ctx, r.kv, featuredUsernameKey, &username)
	if err != nil {
		return "", fmt.Errorf("failed to get featured username: %w", err)
	}
	if !found {
		return "", nil
	}
	return username, nil
}

// SetFeaturedUsername replaces the global selection, last write wins
func (r *SettingsRepository) SetFeaturedUsername(ctx context.Context, username string) error {
	if err := r.kv.Set(ctx, featuredUsernameKey, username); err != nil {
		return fmt.Errorf("failed to set featured username: %w", err)
	}
	return nil
}
