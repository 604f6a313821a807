package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	logger   zerolog.Logger
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

func (ls *LocalStorage) fullPath(name string) (string, error) {
	filename := SanitizeName(name)
	if filename == "" {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(ls.basePath, filename), nil
}

// Save writes reader to <basePath>/<name>
func (ls *LocalStorage) Save(_ context.Context, name string, reader io.Reader, _ string) error {
	dstPath, err := ls.fullPath(name)
	if err != nil {
		return err
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, reader); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	ls.logger.Debug().Str("saved_as", filepath.Base(dstPath)).Msg("File saved")
	return nil
}

// Open opens a stored file for reading
func (ls *LocalStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	path, err := ls.fullPath(name)
	if err != nil {
		return nil, ErrFileNotFound
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a stored file. Missing files are ignored.
func (ls *LocalStorage) Delete(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	path, err := ls.fullPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ls.logger.Warn().Str("path", path).Msg("File to delete does not exist")
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Debug().Str("path", path).Msg("File deleted")
	return nil
}

// Exists reports whether the file is present
func (ls *LocalStorage) Exists(_ context.Context, name string) (bool, error) {
	path, err := ls.fullPath(name)
	if err != nil {
		return false, nil
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
