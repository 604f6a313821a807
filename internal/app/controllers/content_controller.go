package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
)

// ContentController serves the static catalogs and stored files
type ContentController struct {
	contentService *services.ContentService
	files          filestorage.FileStorage
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService, files filestorage.FileStorage) *ContentController {
	return &ContentController{contentService: contentService, files: files}
}

// Events
// @Summary University events
// @Tags content
// @Produce json
// @Success 200 {array} models.Event
// @Router /events [get]
func (c *ContentController) Events(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.contentService.Events())
}

// Mentorships
// @Summary Mentorship programmes
// @Tags content
// @Produce json
// @Success 200 {array} models.Mentorship
// @Router /mentorships [get]
func (c *ContentController) Mentorships(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.contentService.Mentorships())
}

// Careers
// @Summary Career paths
// @Tags content
// @Produce json
// @Success 200 {array} models.Career
// @Router /careers [get]
func (c *ContentController) Careers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.contentService.Careers())
}

// ConnectData
// @Summary Organisations and contacts
// @Tags content
// @Produce json
// @Success 200 {array} models.ConnectEntry
// @Router /connect_data [get]
func (c *ContentController) ConnectData(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.contentService.ConnectData())
}

// ProfileFile streams a stored upload
// @Summary Download an uploaded file
// @Tags content
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /profile_file/{filename} [get]
func (c *ContentController) ProfileFile(ctx *gin.Context) {
	name := filestorage.SanitizeName(ctx.Param("filename"))
	rc, err := c.files.Open(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, filestorage.ErrFileNotFound) {
			err = apperrors.ErrFileNotFound
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer rc.Close()

	ctx.Header("Cache-Control", "private, max-age=300")
	ctx.Header("Content-Type", filestorage.ContentType(name))
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, rc); err != nil {
		_ = ctx.Error(err)
	}
}
