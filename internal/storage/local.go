package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes files under a directory on disk
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates dir if it doesn't exist
func NewLocalStorage(dir string) (*LocalStorage, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes to a temp file then renames it, so a partial archive never
// appears under the final name
func (s *LocalStorage) Save(ctx context.Context, path string, file io.Reader) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(fullPath), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmpPath := fullPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = io.Copy(f, file)
	if err == nil {
		err = f.Sync()
	}
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	err = os.Rename(tmpPath, fullPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}

	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// URL returns the absolute file path
func (s *LocalStorage) URL(path string) string {
	fullPath, err := s.resolve(path)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return fullPath
	}
	return abs
}

// resolve keeps paths inside the storage directory; rooting before Clean
// strips any leading ".."
func (s *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return filepath.Join(s.dir, clean), nil
}
