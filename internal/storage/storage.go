package storage

import (
	"context"
	"io"

	"github.com/coderr-app/marketplace-api/internal/config"
)

// Storage persists uploaded files and returns a URL the API can hand back
// to clients.
type Storage interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}

// FromConfig picks S3 when a bucket is configured, local disk otherwise.
func FromConfig(cfg *config.Config) Storage {
	if cfg.S3Bucket != "" {
		return NewS3Storage(cfg)
	}
	return NewLocalStorage(cfg.UploadDir)
}
