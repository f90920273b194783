package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stocklane/warehouse-api/internal/config"
)

// MinioClient implements ObjectStorage for S3-compatible services.
type MinioClient struct {
	client *minio.Client
	bucket string
}

// NewMinioClient builds an ObjectStorage backed by a MinIO / S3-compatible
// endpoint.
func NewMinioClient(cfg config.StorageConfig) (*MinioClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client init failed: %w", err)
	}

	return &MinioClient{client: client, bucket: cfg.Bucket}, nil
}

// ListObjects lists all objects for a given prefix.
func (c *MinioClient) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("storage list failed: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, Size: obj.Size})
	}

	return objects, nil
}

// DownloadObject fetches key into destPath, creating parent directories.
func (c *MinioClient) DownloadObject(ctx context.Context, key string, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to prepare directory for %s: %w", destPath, err)
	}

	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage get %s failed: %w", key, err)
	}
	defer obj.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj); err != nil {
		return fmt.Errorf("storage download %s failed: %w", key, err)
	}

	return nil
}

// UploadObject writes data under key in the configured bucket.
func (c *MinioClient) UploadObject(ctx context.Context, key string, data []byte) error {
	_, err := c.client.PutObject(ctx, c.bucket, key,
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage upload %s failed: %w", key, err)
	}
	return nil
}
