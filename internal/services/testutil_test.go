package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"valentine-backend/internal/identity"
	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"
)

const testAdminPasscode = "letmein"

// fakeBlobStore is an in-memory blob.Store whose signed URLs encode the
// path and expiry so tests can assert on reissue behavior.
type fakeBlobStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failSign bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) EnsureBucket(ctx context.Context) error { return nil }

func (f *fakeBlobStore) Upload(ctx context.Context, path, contentType string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, path)
	return nil
}

func (f *fakeBlobStore) SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSign {
		return "", fmt.Errorf("signing unavailable")
	}
	return fmt.Sprintf("https://blob.test/%s?ttl=%d", path, int(expiry.Seconds())), nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func (f *fakeBlobStore) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[path]
	return ok
}

type testEnv struct {
	kv       *kvstore.MemoryStore
	blobs    *fakeBlobStore
	provider *identity.KVProvider

	profileRepo  *repository.ProfileRepository
	photoRepo    *repository.PhotoRepository
	settingsRepo *repository.SettingsRepository

	accounts *AccountService
	photos   *PhotoService
	content  *ContentService
	public   *PublicService
	admin    *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	blobs := newFakeBlobStore()
	provider := identity.NewKVProvider(kv, "test-secret", time.Hour)

	profileRepo := repository.NewProfileRepository(kv)
	photoRepo := repository.NewPhotoRepository(kv)
	contentRepo := repository.NewContentRepository(kv)
	settingsRepo := repository.NewSettingsRepository(kv)

	photos := NewPhotoService(photoRepo, blobs)
	content := NewContentService(contentRepo)

	return &testEnv{
		kv:           kv,
		blobs:        blobs,
		provider:     provider,
		profileRepo:  profileRepo,
		photoRepo:    photoRepo,
		settingsRepo: settingsRepo,
		accounts:     NewAccountService(profileRepo, provider, testAdminPasscode),
		photos:       photos,
		content:      content,
		public:       NewPublicService(profileRepo, settingsRepo, photos, content),
		admin:        NewAdminService(profileRepo, settingsRepo),
	}
}

func (env *testEnv) mustSignUp(t *testing.T, username, email string) *models.UserProfile {
	t.Helper()

	profile, err := env.accounts.SignUp(context.Background(), SignUpInput{
		Username: username,
		Password: "pw123456",
		Email:    email,
	})
	if err != nil {
		t.Fatalf("signup failed for %s: %v", username, err)
	}
	return profile
}
