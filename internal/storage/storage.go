// Package storage manages QR code image files on disk.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vadimbarashkov/qr-manager/internal/qrimage"
)

// ErrInvalidFilename is returned when a filename fails validation
// or would escape the store directory.
var ErrInvalidFilename = errors.New("invalid filename")

// FileStore stores QR code images under a single directory.
type FileStore struct {
	dir string
}

// New creates the store directory if it doesn't exist and returns a FileStore.
func New(dir string) (*FileStore, error) {
	const op = "storage.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: failed to create directory: %w", op, err)
	}

	return &FileStore{dir: dir}, nil
}

// Path returns the absolute path of the named image inside the store.
func (s *FileStore) Path(name string) (string, error) {
	const op = "storage.FileStore.Path"

	if !qrimage.ValidFilename(name) {
		return "", fmt.Errorf("%s: %q: %w", op, name, ErrInvalidFilename)
	}

	return filepath.Join(s.dir, name), nil
}

// Save writes the image data under the given name, replacing any existing file.
func (s *FileStore) Save(name string, data []byte) error {
	const op = "storage.FileStore.Save"

	path, err := s.Path(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: failed to write file: %w", op, err)
	}

	return nil
}

// Remove deletes the named image. A file that is already absent is not an error.
func (s *FileStore) Remove(name string) error {
	const op = "storage.FileStore.Remove"

	path, err := s.Path(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: failed to remove file: %w", op, err)
	}

	return nil
}
