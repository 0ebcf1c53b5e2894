package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristiarazvan/gogogo/internal/storage"
)

// Storage implements storage.Storage on the local filesystem. Files are
// written under rootDir and served from baseURL by the static file route.
type Storage struct {
	rootDir string
	baseURL string
}

// New creates a local storage backed by rootDir. The directory is created
// if it does not exist.
func New(rootDir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the file to disk under its key.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	key := filepath.Clean(input.Key)
	if key == "." || strings.HasPrefix(key, "..") || filepath.IsAbs(key) {
		return nil, fmt.Errorf("invalid storage key: %s", input.Key)
	}

	path := filepath.Join(s.rootDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, io.LimitReader(input.Data, storage.MaxFileSize)); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &storage.UploadResult{
		Key: key,
		URL: s.urlFor(key),
	}, nil
}

// Delete removes the file for the given key.
func (s *Storage) Delete(_ context.Context, key string) error {
	path := filepath.Join(s.rootDir, filepath.Clean(key))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// GetURL returns the public URL for the given key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	path := filepath.Join(s.rootDir, filepath.Clean(key))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", key)
	}
	return s.urlFor(key), nil
}

func (s *Storage) urlFor(key string) string {
	return s.baseURL + "/" + filepath.ToSlash(key)
}
