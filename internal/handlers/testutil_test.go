package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"
	"time"

	"valentine-backend/internal/identity"
	"valentine-backend/internal/kvstore"
	"valentine-backend/internal/repository"
	"valentine-backend/internal/services"
)

const testAdminPasscode = "letmein"

// fakeBlobStore is an in-memory blob.Store for handler tests.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
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
	return fmt.Sprintf("https://blob.test/%s?ttl=%d", path, int(expiry.Seconds())), nil
}

type testServer struct {
	router http.Handler
	blobs  *fakeBlobStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	kv := kvstore.NewMemoryStore()
	blobs := newFakeBlobStore()
	provider := identity.NewKVProvider(kv, "test-secret", time.Hour)

	profileRepo := repository.NewProfileRepository(kv)
	photoRepo := repository.NewPhotoRepository(kv)
	contentRepo := repository.NewContentRepository(kv)
	settingsRepo := repository.NewSettingsRepository(kv)

	accountService := services.NewAccountService(profileRepo, provider, testAdminPasscode)
	photoService := services.NewPhotoService(photoRepo, blobs)
	contentService := services.NewContentService(contentRepo)
	publicService := services.NewPublicService(profileRepo, settingsRepo, photoService, contentService)
	adminService := services.NewAdminService(profileRepo, settingsRepo)

	router := NewRouter(
		accountService,
		NewAccountHandler(accountService),
		NewPhotoHandler(photoService),
		NewContentHandler(contentService),
		NewPublicHandler(publicService),
		NewAdminHandler(adminService),
	)

	return &testServer{router: router, blobs: blobs}
}

// do performs a JSON request; token is sent as X-User-Token when set.
func (ts *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-User-Token", token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// upload performs a multipart photo upload with a small payload
func (ts *testServer) upload(t *testing.T, day, filename, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	return ts.uploadData(t, day, filename, contentType, token, []byte("fake image bytes"))
}

// uploadData performs a multipart photo upload with the given file bytes
func (ts *testServer) uploadData(t *testing.T, day, filename, contentType, token string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload/"+day, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("X-User-Token", token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// doBearer performs a bodyless request with an Authorization header
func (ts *testServer) doBearer(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// signUp registers a creator and returns nothing; failures stop the test
func (ts *testServer) signUp(t *testing.T, username, email, role, passcode string) {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/signup", map[string]string{
		"username":      username,
		"password":      "pw123456",
		"email":         email,
		"role":          role,
		"adminPasscode": passcode,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signup for %s failed: %d %s", username, rec.Code, rec.Body.String())
	}
}

// signIn returns the session token for a registered creator
func (ts *testServer) signIn(t *testing.T, identifier string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/signin", map[string]string{
		"identifier": identifier,
		"password":   "pw123456",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signin for %s failed: %d %s", identifier, rec.Code, rec.Body.String())
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, rec, &body)
	if body.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	return body.AccessToken
}
