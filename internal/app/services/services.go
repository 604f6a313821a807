package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
)

// Publisher pushes a live notification to a connected user
type Publisher interface {
	Notify(username, content string)
}

type nopPublisher struct{}

func (nopPublisher) Notify(string, string) {}

// uploads validates and stores user files under generated names
type uploads struct {
	files    filestorage.FileStorage
	maxBytes int64
	logger   zerolog.Logger
}

func newUploads(files filestorage.FileStorage, maxBytes int64, logger zerolog.Logger) *uploads {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &uploads{files: files, maxBytes: maxBytes, logger: logger}
}

func (u *uploads) validate(purpose filestorage.Purpose, f *dto.UploadedFile, label string) error {
	if f == nil || f.Size() == 0 {
		return apperrors.NewInvalidInputError(label + " is required")
	}
	if !purpose.Allows(f.Filename) {
		return apperrors.NewInvalidInputError(fmt.Sprintf("invalid %s file type; allowed: %s",
			label, strings.Join(purpose.AllowedExtensions(), ", ")))
	}
	if int64(f.Size()) > u.maxBytes {
		return apperrors.NewInvalidInputError(fmt.Sprintf("%s exceeds the %d MB limit", label, u.maxBytes>>20))
	}
	return nil
}

// store validates f and writes it, returning the stored name
func (u *uploads) store(ctx context.Context, username string, purpose filestorage.Purpose, f *dto.UploadedFile, label string) (string, error) {
	if err := u.validate(purpose, f, label); err != nil {
		return "", err
	}
	name := filestorage.GenerateName(username, purpose, f.Filename)
	if err := u.files.Save(ctx, name, bytes.NewReader(f.Content), filestorage.ContentType(f.Filename)); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", label, err)
	}
	u.logger.Debug().Str("username", username).Str("purpose", string(purpose)).Str("file", name).Msg("Upload stored")
	return name, nil
}

// copy duplicates the stored file src under a new name for username
func (u *uploads) copy(ctx context.Context, username string, purpose filestorage.Purpose, src string) (string, error) {
	rc, err := u.files.Open(ctx, src)
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			return "", apperrors.NewInvalidInputError("the saved file is no longer available; upload it again")
		}
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer rc.Close()

	name := filestorage.GenerateName(username, purpose, src)
	if err := u.files.Save(ctx, name, rc, filestorage.ContentType(src)); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}
	u.logger.Debug().Str("username", username).Str("from", src).Str("file", name).Msg("Upload copied")
	return name, nil
}

// remove deletes a stored file; failures are logged and swallowed
func (u *uploads) remove(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := u.files.Delete(ctx, name); err != nil {
		u.logger.Warn().Err(err).Str("file", name).Msg("Failed to delete stored file")
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	return &s
}

// overwrite sets *dst to value unless value is blank
func overwrite(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
