package blob

import (
	"context"
	"time"
)

// Store is namespaced object storage with time-limited signed read URLs.
type Store interface {
	// EnsureBucket creates the backing bucket if it does not exist yet.
	EnsureBucket(ctx context.Context) error
	// Upload stores data under path.
	Upload(ctx context.Context, path, contentType string, data []byte) error
	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error
	// SignedURL issues a read URL for path that expires after expiry.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
