package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"valentine-backend/internal/blob"
	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	// MaxPhotosPerDay caps live records per (username, day). The check
	// is read-then-write; concurrent uploads racing it may transiently
	// exceed the cap.
	MaxPhotosPerDay = 6

	uploadURLExpiry = 7 * 24 * time.Hour
	publicURLExpiry = 365 * 24 * time.Hour
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips everything outside [A-Za-z0-9._-]
func SanitizeFilename(name string) string {
	if name == "" {
		name = "image"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// PhotoService handles photo upload, deletion and signed-URL refresh
type PhotoService struct {
	photos *repository.PhotoRepository
	blobs  blob.Store
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos *repository.PhotoRepository, blobs blob.Store) *PhotoService {
	return &PhotoService{photos: photos, blobs: blobs}
}

// Upload stores the file under username/day/timestamp_name, issues a
// signed URL for the immediate response and appends the record to the
// day's photo list. The cap is checked before any blob is written.
func (s *PhotoService) Upload(ctx context.Context, username string, day models.Day, filename, contentType string, data []byte) (*models.PhotoRecord, error) {
	current, err := s.photos.Photos(ctx, username, day)
	if err != nil {
		return nil, err
	}
	if len(current) >= MaxPhotosPerDay {
		return nil, ErrPhotoLimit
	}

	// Cold starts may have missed bucket creation; re-check best effort.
	if err := s.blobs.EnsureBucket(ctx); err != nil {
		log.Error().Err(err).Msg("Bucket check/create failed")
	}

	now := time.Now()
	path := fmt.Sprintf("%s/%s/%d_%s", username, day, now.UnixMilli(), SanitizeFilename(filename))

	if err := s.blobs.Upload(ctx, path, contentType, data); err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	url, err := s.blobs.SignedURL(ctx, path, uploadURLExpiry)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Signed URL issuance failed")
		url = ""
	}

	record := models.PhotoRecord{
		ID:         now.UnixMilli(),
		Path:       path,
		URL:        url,
		UploadedAt: now.UTC(),
	}
	current = append(current, record)
	if err := s.photos.SavePhotos(ctx, username, day, current); err != nil {
		return nil, err
	}

	log.Info().
		Str("username", username).
		Str("day", string(day)).
		Str("path", path).
		Msg("Photo uploaded")

	return &record, nil
}

// Delete removes the blob, then the record. A failed blob removal is
// logged and the metadata is removed anyway; a failed metadata write
// after a successful blob removal leaves a harmless orphaned record.
func (s *PhotoService) Delete(ctx context.Context, username string, day models.Day, photoID int64) error {
	current, err := s.photos.Photos(ctx, username, day)
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range current {
		if p.ID == photoID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPhotoNotFound
	}

	if err := s.blobs.Delete(ctx, current[idx].Path); err != nil {
		log.Error().Err(err).Str("path", current[idx].Path).Msg("Blob removal failed")
	}

	remaining := append(current[:idx:idx], current[idx+1:]...)
	return s.photos.SavePhotos(ctx, username, day, remaining)
}

// PhotosWithFreshURLs returns the day's records with signed URLs
// reissued at read time. The stored URL is only a fallback when
// reissue fails.
func (s *PhotoService) PhotosWithFreshURLs(ctx context.Context, username string, day models.Day) ([]models.PhotoRecord, error) {
	photos, err := s.photos.Photos(ctx, username, day)
	if err != nil {
		return nil, err
	}
	if photos == nil {
		photos = []models.PhotoRecord{}
	}

	for i := range photos {
		url, err := s.blobs.SignedURL(ctx, photos[i].Path, publicURLExpiry)
		if err != nil || url == "" {
			continue
		}
		photos[i].URL = url
	}
	return photos, nil
}

// AllPhotos returns fresh-URL photo lists for every day
func (s *PhotoService) AllPhotos(ctx context.Context, username string) (map[models.Day][]models.PhotoRecord, error) {
	all := make(map[models.Day][]models.PhotoRecord, len(models.Days))
	for _, day := range models.Days {
		photos, err := s.PhotosWithFreshURLs(ctx, username, day)
		if err != nil {
			return nil, err
		}
		all[day] = photos
	}
	return all, nil
}
