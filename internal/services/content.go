package services

import (
	"context"

	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"
)

// ContentService handles day-specific page content
type ContentService struct {
	content *repository.ContentRepository
}

// NewContentService creates a new content service
func NewContentService(content *repository.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// Get returns the content for (username, day), an empty object when
// nothing was written yet
func (s *ContentService) Get(ctx context.Context, username string, day models.Day) (models.DayContent, error) {
	return s.content.Content(ctx, username, day)
}

// Update merges the supplied fields over the stored content and
// persists the result
func (s *ContentService) Update(ctx context.Context, username string, day models.Day, updates models.DayContent) (models.DayContent, error) {
	current, err := s.content.Content(ctx, username, day)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		current[k] = v
	}
	if err := s.content.SaveContent(ctx, username, day, current); err != nil {
		return nil, err
	}
	return current, nil
}
