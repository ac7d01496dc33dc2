package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is a durable mapping from string key to a JSON value.
// Get returns nil with no error when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// GetInto reads key and unmarshals it into out. It reports whether the
// key was present.
func GetInto(ctx context.Context, s Store, key string, out interface{}) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode value for key %s: %w", key, err)
	}
	return true, nil
}
