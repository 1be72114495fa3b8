package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// diskStore implements Service on the local filesystem under a single directory.
type diskStore struct {
	dir string
}

// newDiskStore creates the upload directory if needed and returns the store.
func newDiskStore(dir string) (*diskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

// path resolves a key inside the upload directory, rejecting anything that
// would escape it.
func (d *diskStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", ErrNotFound
	}
	return filepath.Join(d.dir, key), nil
}

func (d *diskStore) Save(ctx context.Context, key string, mimeType string, size int64, content io.Reader) error {
	target, err := d.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp upload file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}

	// Rename is atomic on the same filesystem, so readers never see a torn file.
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("store upload: %w", err)
	}
	return nil
}

func (d *diskStore) Open(ctx context.Context, key string) (*Object, error) {
	target, err := d.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat stored file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(target))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Content:     f,
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

func (d *diskStore) Delete(ctx context.Context, key string) error {
	target, err := d.path(key)
	if err != nil {
		return nil
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return nil
}
