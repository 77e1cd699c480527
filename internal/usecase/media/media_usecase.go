package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/google/uuid"
)

// ObjectStore is the blob backend the uploads land in.
type ObjectStore interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	URL(objectKey string) string
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type MediaUseCase struct {
	store       ObjectStore
	maxFileSize int64
}

func NewMediaUseCase(store ObjectStore, maxFileSize int64) *MediaUseCase {
	if maxFileSize <= 0 {
		maxFileSize = 5 << 20
	}
	return &MediaUseCase{store: store, maxFileSize: maxFileSize}
}

// UploadResult describes one stored object.
type UploadResult struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
}

// Upload stores a single image under a generated key.
func (uc *MediaUseCase) Upload(ctx context.Context, filename, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	if size <= 0 || size > uc.maxFileSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", domain.ErrInvalidInput, uc.maxFileSize)
	}
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: content type %q is not allowed", domain.ErrInvalidInput, contentType)
	}
	if e := strings.ToLower(path.Ext(filename)); e == ".jpg" || e == ".jpeg" || e == ".png" {
		ext = e
	}

	objectKey := fmt.Sprintf("uploads/%s%s", uuid.New().String(), ext)
	if err := uc.store.Put(ctx, objectKey, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	return &UploadResult{
		ObjectKey: objectKey,
		URL:       uc.store.URL(objectKey),
		Size:      size,
	}, nil
}

func (uc *MediaUseCase) Delete(ctx context.Context, objectKey string) error {
	if !strings.HasPrefix(objectKey, "uploads/") || strings.Contains(objectKey, "..") {
		return fmt.Errorf("%w: bad object key", domain.ErrInvalidInput)
	}
	return uc.store.Remove(ctx, objectKey)
}

func (uc *MediaUseCase) MaxFileSize() int64 { return uc.maxFileSize }
