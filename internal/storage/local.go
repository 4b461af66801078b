package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// LocalStore writes uploaded documents to a directory on local disk.
// Stored names are generated server-side; clients only ever see those.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a
// store rooted at it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes one uploaded file to disk and returns the generated name:
// the upload timestamp in milliseconds, a dash, and the original filename
// with whitespace collapsed to underscores.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeFilename(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	return name, nil
}

// Remove deletes a previously stored file. Used to back out uploads when
// the database write that should reference them fails.
func (s *LocalStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// SanitizeFilename strips any path components from a client-supplied
// filename and replaces whitespace runs with underscores.
func SanitizeFilename(name string) string {
	return whitespacePattern.ReplaceAllString(filepath.Base(name), "_")
}
