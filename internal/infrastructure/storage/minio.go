package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dateit-app/dateit-backend/internal/config"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStorage wraps a MinIO client bound to a single bucket.
type MinioStorage struct {
	client *minio.Client
	config *config.StorageConfig
}

// NewMinioStorage creates the client and makes sure the bucket exists.
func NewMinioStorage(cfg *config.StorageConfig) (*MinioStorage, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.L().Info("bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{client: client, config: cfg}, nil
}

func (s *MinioStorage) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.config.Bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return nil
}

func (s *MinioStorage) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.config.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}
	return nil
}

// URL builds the public URL for an object.
func (s *MinioStorage) URL(objectKey string) string {
	base := strings.TrimSuffix(s.config.BaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.Bucket, strings.TrimPrefix(objectKey, "/"))
}
