package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/templui/resumebook/internal/config"
)

// Storage is the destination archives are written to
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// URL returns a location the operator can download the file from
	URL(path string) string
}

// New creates the destination configured by DESTINATION
func New(c *cfg.Config) (Storage, error) {
	switch c.Destination {
	case cfg.DestinationS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	case cfg.DestinationLocal:
		slog.Info("initializing local storage", "dir", c.OutputDir)
		return NewLocalStorage(c.OutputDir)
	default:
		return nil, fmt.Errorf("unknown destination %q", c.Destination)
	}
}
