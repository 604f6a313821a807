package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores each collection as <dir>/<collection>.json
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, filepath.Base(collection)+".json")
}

// Read implements Backend
func (b *FileBackend) Read(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(b.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCollectionNotFound
	}
	return data, err
}

// Write replaces the collection file atomically
func (b *FileBackend) Write(_ context.Context, collection string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, filepath.Base(collection)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path(collection)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Close implements Backend
func (b *FileBackend) Close() error { return nil }
