package repository

import (
	"context"
	"fmt"

	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/models"
)

// ContentRepository handles per-(username, day) page content
type ContentRepository struct {
	kv kvstore.Store
}

// NewContentRepository creates a new content repository
func NewContentRepository(kv kvstore.Store) *ContentRepository {
	return &ContentRepository{kv: kv}
}

func contentKey(username string, day models.Day) string {
	return fmt.Sprintf("day_content_%s_%s", username, day)
}

// Content returns the stored content for (username, day). A missing
// record yields an empty object, never an error.
func (r *ContentRepository) Content(ctx context.Context, username string, day models.Day) (models.DayContent, error) {
	content := models.DayContent{}
	if _, err := kvstore.GetInto(ctx, r.kv, contentKey(username, day), &content); err != nil {
		return nil, fmt.Errorf("failed to get content for %s/%s: %w", username, day, err)
	}
	return content, nil
}

// SaveContent overwrites the content for (username, day)
func (r *ContentRepository) SaveContent(ctx context.Context, username string, day models.Day, content models.DayContent) error {
	if err := r.kv.Set(ctx, contentKey(username, day), content); err != nil {
		return fmt.Errorf("failed to save content for %s/%s: %w", username, day, err)
	}
	return nil
}
