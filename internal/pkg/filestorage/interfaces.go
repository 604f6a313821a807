package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by Open when no object exists under the name
var ErrFileNotFound = errors.New("file not found")

// FileStorage stores uploaded files under flat, generated names
type FileStorage interface {
	// Save writes the content of reader under name, replacing any existing object
	Save(ctx context.Context, name string, reader io.Reader, contentType string) error

	// Open returns the stored content or ErrFileNotFound
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the object; a missing object is not an error
	Delete(ctx context.Context, name string) error

	// Exists reports whether an object is stored under name
	Exists(ctx context.Context, name string) (bool, error)
}
