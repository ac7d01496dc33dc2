package repository

import (
	"context"
	"fmt"

	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/models"
)

// PhotoRepository handles per-(username, day) photo lists
type PhotoRepository struct {
	kv kvstore.Store
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(kv kvstore.Store) *PhotoRepository {
	return &PhotoRepository{kv: kv}
}

func photosKey(username string, day models.Day) string {
	return fmt.Sprintf("photos_%s_%s", username, day)
}

// Photos returns the photo list for (username, day), empty when absent
func (r *PhotoRepository) Photos(ctx context.Context, username string, day models.Day) ([]models.PhotoRecord, error) {
	var photos []models.PhotoRecord
	if _, err := kvstore.GetInto(ctx, r.kv, photosKey(username, day), &photos); err != nil {
		return nil, fmt.Errorf("failed to get photos for %s/%s: %w", username, day, err)
	}
	return photos, nil
}

// SavePhotos overwrites the photo list for (username, day)
func (r *PhotoRepository) SavePhotos(ctx context.Context, username string, day models.Day, photos []models.PhotoRecord) error {
	if photos == nil {
		photos = []models.PhotoRecord{}
	}
	if err := r.kv.Set(ctx, photosKey(username, day), photos); err != nil {
		return fmt.Errorf("failed to save photos for %s/%s: %w", username, day, err)
	}
	return nil
}
