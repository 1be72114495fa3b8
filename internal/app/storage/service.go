/*
Package storage persists uploaded profile pictures.

Two backends implement the same Service interface: a local-disk store writing
under a configured directory (the default), and an S3-compatible object store
for deployments where local disk is not durable. The backend is selected by
configuration at startup.
*/
package storage

import (
	"context"
	"errors"
	"io"

	"userhub/internal/configs"
)

// ErrNotFound indicates that no stored object matches the requested key.
var ErrNotFound = errors.New("stored file not found")

// Object is an opened stored file. Callers must close Content.
type Object struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}

// Service is the public interface for the avatar storage backend.
type Service interface {
	// Save stores the content under the given key, replacing any previous object
	// with the same key.
	Save(ctx context.Context, key string, mimeType string, size int64, content io.Reader) error

	// Open retrieves the object for streaming back to a client.
	Open(ctx context.Context, key string) (*Object, error)

	// Delete removes the object specified by the given key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewService is the factory function for Service. It selects the concrete
// implementation from the application configuration.
func NewService(cfg *configs.AppConfig) (Service, error) {
	if cfg.StorageBackend == configs.StorageBackendS3 {
		return newS3Client(ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}
	return newDiskStore(cfg.UploadDir)
}

// ServiceConfig holds the configuration required to connect to the S3 storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}
