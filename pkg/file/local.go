package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes blobs under a directory and builds URLs from a base
// prefix. Intended for development; the directory must be served statically
// by something else for the URLs to resolve.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates directory-backed storage.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if dir == "" {
		return nil, ErrInvalidConfig
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes data to dir/key, creating parent directories as needed.
func (l *LocalStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyBlob
	}

	key = strings.TrimLeft(key, "/")
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key escapes storage root", ErrUploadFailed)
	}

	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return l.baseURL + "/" + key, nil
}
