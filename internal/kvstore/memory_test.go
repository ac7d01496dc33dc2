package kvstore

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get on a missing key returns nil without error", func(t *testing.T) {
		s := NewMemoryStore()
		raw, err := s.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if raw != nil {
			t.Fatalf("expected nil, got %s", raw)
		}
	})

	t.Run("set then get roundtrips", func(t *testing.T) {
		s := NewMemoryStore()
		if err := s.Set(ctx, "greeting", map[string]string{"hello": "world"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var out map[string]string
		found, err := GetInto(ctx, s, "greeting", &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found {
			t.Fatal("expected key to be found")
		}
		if out["hello"] != "world" {
			t.Fatalf("unexpected value: %+v", out)
		}
	})

	t.Run("set overwrites the previous value", func(t *testing.T) {
		s := NewMemoryStore()
		if err := s.Set(ctx, "n", 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Set(ctx, "n", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var n int
		if _, err := GetInto(ctx, s, "n", &n); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2, got %d", n)
		}
	})

	t.Run("GetInto reports absence", func(t *testing.T) {
		s := NewMemoryStore()
		var out string
		found, err := GetInto(ctx, s, "nope", &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Fatal("expected key to be absent")
		}
	})
}
