package services

import (
	"context"
	"errors"
	"testing"

	"valentine-backend/internal/models"
)

func TestAdminSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("lists every registered creator", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustSignUp(t, "alice", "a@x.com")
		env.mustSignUp(t, "bob", "b@x.com")

		featured, users, err := env.admin.Settings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if featured != "" {
			t.Fatalf("expected no featured selection, got %q", featured)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %+v", users)
		}
		if users[0].Username != "alice" || users[1].Username != "bob" {
			t.Fatalf("unexpected listing: %+v", users)
		}
		if users[0].Role != models.RoleMember || users[0].CreatedAt.IsZero() {
			t.Fatalf("unexpected summary: %+v", users[0])
		}
	})

	t.Run("skips index entries with no profile record", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustSignUp(t, "alice", "a@x.com")
		if err := env.profileRepo.AddUsername(ctx, "ghost"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, users, err := env.admin.Settings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 1 || users[0].Username != "alice" {
			t.Fatalf("expected only alice, got %+v", users)
		}
	})
}

func TestSetFeatured(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and persists the selection", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustSignUp(t, "alice", "a@x.com")

		featured, err := env.admin.SetFeatured(ctx, "  ALICE ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if featured != "alice" {
			t.Fatalf("expected alice, got %q", featured)
		}

		stored, err := env.settingsRepo.FeaturedUsername(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored != "alice" {
			t.Fatalf("expected stored selection alice, got %q", stored)
		}
	})

	t.Run("rejects an unknown target", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.admin.SetFeatured(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("rejects an empty username", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.admin.SetFeatured(ctx, "   "); !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("expected ErrInvalidUsername, got %v", err)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustSignUp(t, "alice", "a@x.com")
		env.mustSignUp(t, "bob", "b@x.com")

		if _, err := env.admin.SetFeatured(ctx, "alice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := env.admin.SetFeatured(ctx, "bob"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := env.settingsRepo.FeaturedUsername(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored != "bob" {
			t.Fatalf("expected bob, got %q", stored)
		}
	})
}
