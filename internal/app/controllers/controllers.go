// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/middleware"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

// bind decodes the body by content type; on failure the 400 response is already written
func bind(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBind(obj); err != nil {
		dto.HandleValidationError(ctx, err)
		return false
	}
	return true
}

// principal returns the caller set by the auth middleware, writing 401 when absent
func principal(ctx *gin.Context) (*appauth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("authentication required"))
		return nil, false
	}
	return p, true
}

// readUpload reads the multipart file in field. A missing file yields nil, nil.
func readUpload(ctx *gin.Context, field string, maxBytes int64) (*dto.UploadedFile, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("could not read %s: %v", field, err))
	}
	if header.Size > maxBytes {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes>>20))
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", field, err)
	}
	if int64(len(content)) > maxBytes {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes>>20))
	}
	return &dto.UploadedFile{Filename: header.Filename, Content: content}, nil
}
