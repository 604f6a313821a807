package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
)

// ApplicationController handles job applications
type ApplicationController struct {
	applicationService *services.ApplicationService
	maxUploadBytes     int64
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, maxUploadBytes int64) *ApplicationController {
	return &ApplicationController{applicationService: applicationService, maxUploadBytes: maxUploadBytes}
}

// Apply submits an application with a cover letter and a new or saved CV
// @Summary Apply for a job
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param username formData string true "Applicant"
// @Param job_name formData string true "Job title"
// @Param company_name formData string false "Company name or username"
// @Param job_id formData int false "Job id"
// @Param use_saved_cv formData bool false "Use the CV saved on the profile"
// @Param cover_letter formData file true "Cover letter (pdf, doc, docx)"
// @Param cv_file formData file false "CV (pdf, doc, docx), required unless use_saved_cv"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /apply [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !bind(ctx, &req) {
		return
	}
	cv, err := readUpload(ctx, "cv_file", c.maxUploadBytes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	coverLetter, err := readUpload(ctx, "cover_letter", c.maxUploadBytes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	app, err := c.applicationService.Apply(ctx.Request.Context(), p, &req, cv, coverLetter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ApplicationResponse{Success: true, Message: "Application submitted", Application: app})
}

// ListForStudent lists the caller's applications
// @Summary Own applications
// @Tags applications
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} dto.ApplicationsResponse
// @Router /applications/{username} [get]
func (c *ApplicationController) ListForStudent(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	apps, err := c.applicationService.ListForStudent(ctx.Request.Context(), p, ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ApplicationsResponse{Success: true, Applications: apps})
}

// Withdraw removes one of the caller's applications
// @Summary Withdraw an application
// @Tags applications
// @Security BearerAuth
// @Param request body dto.WithdrawApplicationRequest true "Application"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /withdraw_application [post]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.WithdrawApplicationRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.applicationService.Withdraw(ctx.Request.Context(), p, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Application withdrawn"))
}

// UpdateStatus changes an application's status and notifies the applicant
// @Summary Update application status
// @Tags applications
// @Security BearerAuth
// @Param request body dto.UpdateStatusRequest true "Status change"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /update_application_status [post]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bind(ctx, &req) {
		return
	}
	app, err := c.applicationService.UpdateStatus(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ApplicationResponse{Success: true, Message: "Status updated", Application: app})
}
