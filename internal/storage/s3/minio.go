// Package s3 реализует storage.Backend для S3-совместимых хранилищ через MinIO SDK.
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sir_venger/blob_functions/internal/storage"
)

var _ storage.Backend = (*Client)(nil)

// Config — параметры подключения к одному бакету.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	UseSSL        bool
	Bucket        string
	PublicBaseURL string
}

// Client — клиент MinIO, привязанный к бакету.
type Client struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// New создаёт клиент. Сетевых вызовов не делает.
func New(cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new client: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = storage.JoinURL(mc.EndpointURL().String(), cfg.Bucket)
	}

	return &Client{
		client:  mc,
		bucket:  cfg.Bucket,
		baseURL: base,
	}, nil
}

func (c *Client) Container() string {
	return c.bucket
}

// ContainerProperties проверяет существование бакета.
func (c *Client) ContainerProperties(ctx context.Context) (storage.ContainerProperties, error) {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return storage.ContainerProperties{}, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		return storage.ContainerProperties{}, fmt.Errorf("bucket %q does not exist", c.bucket)
	}
	return storage.ContainerProperties{Name: c.bucket}, nil
}

func (c *Client) List(ctx context.Context, prefix string, limit int) ([]storage.ObjectInfo, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("s3: limit must be positive")
	}

	// Отмена контекста останавливает фоновую горутину листинга после limit объектов.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   limit,
	})

	out := make([]storage.ObjectInfo, 0, min(limit, 1000))
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		info := storage.ObjectInfo{
			Name: obj.Key,
			Size: obj.Size,
			ETag: obj.ETag,
		}
		if obj.ContentType != "" {
			ct := obj.ContentType
			info.ContentType = &ct
		}
		if !obj.LastModified.IsZero() {
			lm := obj.LastModified
			info.LastModified = &lm
		}
		out = append(out, info)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}

// Upload стримит тело в бакет; size = -1, если длина неизвестна.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

func (c *Client) URL(key string) string {
	return storage.JoinURL(c.baseURL, key)
}
