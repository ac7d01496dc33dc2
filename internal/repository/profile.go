package repository

import (
	"context"
	"fmt"

	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/models"
)

// ProfileRepository handles profile records and their reverse indices
type ProfileRepository struct {
	kv kvstore.Store
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(kv kvstore.Store) *ProfileRepository {
	return &ProfileRepository{kv: kv}
}

func profileKey(username string) string { return "user_profile_" + username }

func providerIDKey(userID string) string { return "user_id_" + userID }

func emailIndexKey(email string) string { return "email_" + email }

const usernameIndexKey = "all_usernames"

// Profile returns the stored profile for username, nil when absent
func (r *ProfileRepository) Profile(ctx context.Context, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	found, err := kvstore.GetInto(ctx, r.kv, profileKey(username), &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", username, err)
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile stores the profile under its username
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := r.kv.Set(ctx, profileKey(profile.Username), profile); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", profile.Username, err)
	}
	return nil
}

// UsernameByProviderID resolves a provider subject id to a username,
// "" when unindexed
func (r *ProfileRepository) UsernameByProviderID(ctx context.Context, userID string) (string, error) {
	var username string
	found, err := kvstore.GetInto(ctx, r.kv, providerIDKey(userID), &username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve provider id %s: %w", userID, err)
	}
	if !found {
		return "", nil
	}
	return username, nil
}

// SetProviderIndex records the providerID -> username mapping
func (r *ProfileRepository) SetProviderIndex(ctx context.Context, userID, username string) error {
	if err := r.kv.Set(ctx, providerIDKey(userID), username); err != nil {
		return fmt.Errorf("failed to index provider id %s: %w", userID, err)
	}
	return nil
}

// UsernameByEmail resolves a normalized email to a username, "" when unindexed
func (r *ProfileRepository) UsernameByEmail(ctx context.Context, email string) (string, error) {
	var username string
	found, err := kvstore.GetInto(ctx, r.kv, emailIndexKey(email), &username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve email %s: %w", email, err)
	}
	if !found {
		return "", nil
	}
	return username, nil
}

// SetEmailIndex records the email -> username mapping
func (r *ProfileRepository) SetEmailIndex(ctx context.Context, email, username string) error {
	if err := r.kv.Set(ctx, emailIndexKey(email), username); err != nil {
		return fmt.Errorf("failed to index email %s: %w", email, err)
	}
	return nil
}

// Usernames returns the append-only username index
func (r *ProfileRepository) Usernames(ctx context.Context) ([]string, error) {
	var usernames []string
	if _, err := kvstore.GetInto(ctx, r.kv, usernameIndexKey, &usernames); err != nil {
		return nil, fmt.Errorf("failed to get username index: %w", err)
	}
	return usernames, nil
}

// AddUsername appends username to the index, skipping duplicates
func (r *ProfileRepository) AddUsername(ctx context.Context, username string) error {
	usernames, err := r.Usernames(ctx)
	if err != nil {
		return err
	}
	for _, u := range usernames {
		if u == username {
			return nil
		}
	}
	usernames = append(usernames, username)
	if err := r.kv.Set(ctx, usernameIndexKey, usernames); err != nil {
		return fmt.Errorf("failed to update username index: %w", err)
	}
	return nil
}
