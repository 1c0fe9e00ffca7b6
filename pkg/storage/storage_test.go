package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nikogura/portfolio-cv/pkg/config"
)

func TestFileStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	location, err := store.Put(context.Background(), "jane-cv-en.pdf", []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if location != filepath.Join(dir, "jane-cv-en.pdf") {
		t.Errorf("Unexpected location %s", location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("Unexpected content %q", data)
	}

	if _, statErr := os.Stat(location + ".partial"); !os.IsNotExist(statErr) {
		t.Errorf("Staging file left behind: %v", statErr)
	}
}

func TestFileStorePutRenameFails(t *testing.T) {
	dir := t.TempDir()

	// A non-empty directory at the target path cannot be replaced by a file.
	target := filepath.Join(dir, "jane-cv-en.pdf")
	err := os.MkdirAll(filepath.Join(target, "keep"), 0750)
	if err != nil {
		t.Fatalf("Failed to create blocking dir: %v", err)
	}

	_, err = NewFileStore(dir).Put(context.Background(), "jane-cv-en.pdf", []byte("%PDF-1.4"), "application/pdf")
	if err == nil {
		t.Fatal("Expected error when the target is a directory")
	}

	if _, statErr := os.Stat(target + ".partial"); !os.IsNotExist(statErr) {
		t.Errorf("Staging file should be removed after a failed rename: %v", statErr)
	}
}

func TestFileStoreInvalidKey(t *testing.T) {
	store := NewFileStore(t.TempDir())

	for _, key := range []string{"", "../escape.pdf", "dir/", "a/../b.pdf"} {
		_, err := store.Put(context.Background(), key, []byte("x"), "text/plain")
		if err == nil {
			t.Errorf("Expected error for key %q", key)
		}
	}
}

func TestFileStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(t.TempDir()).Put(ctx, "a.pdf", []byte("x"), "application/pdf")
	if err == nil {
		t.Error("Expected error on canceled context")
	}
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, []byte, string) (string, error) {
	return "", os.ErrPermission
}

func TestMultiStore(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	multi := MultiStore{NewFileStore(first), NewFileStore(second)}
	location, err := multi.Put(context.Background(), "cv.docx", []byte("PK"), "application/octet-stream")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if location != filepath.Join(first, "cv.docx") {
		t.Errorf("Expected first location, got %s", location)
	}

	_, err = os.Stat(filepath.Join(second, "cv.docx"))
	if err != nil {
		t.Errorf("Second store not written: %v", err)
	}

	_, err = MultiStore{NewFileStore(first), failingStore{}}.Put(context.Background(), "cv.pdf", []byte("x"), "application/pdf")
	if err == nil {
		t.Error("Expected error from failing store")
	}
}

// fakeS3 answers the handful of requests the MinIO client issues.
type fakeS3 struct {
	mu           sync.Mutex
	bucketExists bool
	madeBucket   bool
	objects      map[string]string // path -> content type
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	isBucket := len(parts) == 1 || parts[1] == ""

	switch {
	case r.Method == http.MethodHead && isBucket:
		if !f.bucketExists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && isBucket:
		f.bucketExists = true
		f.madeBucket = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		f.objects[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newFakeS3(t *testing.T, bucketExists bool) (fake *fakeS3, cfg config.MinIOConfig) {
	t.Helper()
	fake = &fakeS3{bucketExists: bucketExists, objects: map[string]string{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg = config.MinIOConfig{
		Enabled:         true,
		Endpoint:        strings.TrimPrefix(server.URL, "http://"),
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
		Region:          "us-east-1",
		Bucket:          "portfolio",
		Prefix:          "cv/",
	}
	return fake, cfg
}

func TestMinIOStoreCreatesBucket(t *testing.T) {
	fake, cfg := newFakeS3(t, false)

	_, err := NewMinIOStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if !fake.madeBucket {
		t.Error("Expected bucket to be created")
	}
}

func TestMinIOStorePut(t *testing.T) {
	fake, cfg := newFakeS3(t, true)

	store, err := NewMinIOStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if fake.madeBucket {
		t.Error("Existing bucket should not be recreated")
	}

	location, err := store.Put(context.Background(), "jane-cv-de.pdf", []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if location != "portfolio/cv/jane-cv-de.pdf" {
		t.Errorf("Unexpected location %s", location)
	}

	contentType, ok := fake.objects["/portfolio/cv/jane-cv-de.pdf"]
	if !ok {
		t.Fatalf("Object not uploaded, got %v", fake.objects)
	}
	if contentType != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", contentType)
	}
}

func TestMinIOStoreInvalidKey(t *testing.T) {
	_, cfg := newFakeS3(t, true)

	store, err := NewMinIOStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	_, err = store.Put(context.Background(), "../x.pdf", []byte("x"), "application/pdf")
	if err == nil {
		t.Error("Expected error for invalid key")
	}
}
