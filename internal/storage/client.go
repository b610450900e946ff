package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/safar/ar-storefront/internal/config"
)

// Client talks to the bucket through its S3-compatible API. One Client is
// shared by the whole process.
type Client struct {
	mc     *minio.Client
	bucket string
}

func NewClient(cfg config.StorageConfig) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("storage bucket name is required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.KeyID, cfg.ApplicationKey, ""),
		Secure: cfg.UseSSL,
		// A fixed region keeps presigning local: no bucket-location lookup.
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Client{mc: mc, bucket: cfg.BucketName}, nil
}

func (c *Client) Bucket() string {
	return c.bucket
}

// PresignGet returns a time-limited download URL for key.
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (c *Client) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
