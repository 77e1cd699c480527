package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dateit-app/dateit-backend/internal/domain"
)

type memoryObjectStore struct {
	objects map[string][]byte
}

func newMemoryObjectStore() *memoryObjectStore {
	return &memoryObjectStore{objects: make(map[string][]byte)}
}

func (s *memoryObjectStore) Put(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectKey] = data
	return nil
}

func (s *memoryObjectStore) Remove(_ context.Context, objectKey string) error {
	if _, ok := s.objects[objectKey]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, objectKey)
	return nil
}

func (s *memoryObjectStore) URL(objectKey string) string {
	return "https://cdn.dateit.example/photos/" + objectKey
}

func TestUploadStoresUnderGeneratedKey(t *testing.T) {
	store := newMemoryObjectStore()
	uc := NewMediaUseCase(store, 1024)
	ctx := context.Background()

	result, err := uc.Upload(ctx, "me.jpeg", "image/jpeg", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(result.ObjectKey, "uploads/") || !strings.HasSuffix(result.ObjectKey, ".jpeg") {
		t.Fatalf("unexpected object key: %q", result.ObjectKey)
	}
	if result.ObjectKey == "uploads/me.jpeg" {
		t.Fatalf("original filename must not become the key")
	}
	if _, ok := store.objects[result.ObjectKey]; !ok {
		t.Fatalf("object not stored under %q", result.ObjectKey)
	}
	if !strings.HasSuffix(result.URL, result.ObjectKey) {
		t.Fatalf("url must point at the object: %q", result.URL)
	}

	second, err := uc.Upload(ctx, "me.jpeg", "image/jpeg", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.ObjectKey == result.ObjectKey {
		t.Fatalf("keys must be unique per upload")
	}
}

func TestUploadRejectsBadSizeAndType(t *testing.T) {
	uc := NewMediaUseCase(newMemoryObjectStore(), 10)
	ctx := context.Background()

	if _, err := uc.Upload(ctx, "a.png", "image/png", 11, strings.NewReader("x")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("oversized upload must fail, got %v", err)
	}
	if _, err := uc.Upload(ctx, "a.png", "image/png", 0, strings.NewReader("")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty upload must fail, got %v", err)
	}
	if _, err := uc.Upload(ctx, "a.gif", "image/gif", 4, strings.NewReader("data")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("disallowed type must fail, got %v", err)
	}
	if _, err := uc.Upload(ctx, "a.exe", "application/octet-stream", 4, strings.NewReader("data")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("binary upload must fail, got %v", err)
	}
}

func TestDeleteValidatesKey(t *testing.T) {
	store := newMemoryObjectStore()
	uc := NewMediaUseCase(store, 1024)
	ctx := context.Background()

	result, err := uc.Upload(ctx, "me.png", "image/png", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := uc.Delete(ctx, result.ObjectKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("object must be removed")
	}

	if err := uc.Delete(ctx, "avatars/x.png"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("foreign prefix must fail, got %v", err)
	}
	if err := uc.Delete(ctx, "uploads/../secrets"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("path traversal must fail, got %v", err)
	}
}
