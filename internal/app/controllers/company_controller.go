package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
)

// CompanyController exposes the company dashboard and the public job board
type CompanyController struct {
	companyService *services.CompanyService
	maxUploadBytes int64
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService, maxUploadBytes int64) *CompanyController {
	return &CompanyController{companyService: companyService, maxUploadBytes: maxUploadBytes}
}

// UpdateProfile updates company details and optionally the logo
// @Summary Update company profile
// @Tags companies
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param about formData string false "About"
// @Param website formData string false "Website"
// @Param contact_email formData string false "Contact e-mail"
// @Param industry formData string false "Industry"
// @Param file formData file false "Logo (jpg, jpeg, png)"
// @Success 200 {object} dto.CompanyResponse
// @Router /company/update_profile [post]
func (c *CompanyController) UpdateProfile(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UpdateCompanyProfileRequest
	if !bind(ctx, &req) {
		return
	}
	logo, err := readUpload(ctx, "file", c.maxUploadBytes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	profile, err := c.companyService.UpdateProfile(ctx.Request.Context(), p, &req, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyResponse{Success: true, Message: "Profile updated", Company: profile})
}

// ListJobs lists the caller's jobs
// @Summary List own jobs
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.JobsResponse
// @Router /company/jobs [get]
func (c *CompanyController) ListJobs(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	jobs, err := c.companyService.ListJobs(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobsResponse{Success: true, Jobs: jobs})
}

// AddJob posts a job
// @Summary Post a job
// @Tags companies
// @Security BearerAuth
// @Param request body dto.JobRequest true "Job"
// @Success 200 {object} dto.JobResponse
// @Router /company/add_job [post]
func (c *CompanyController) AddJob(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.JobRequest
	if !bind(ctx, &req) {
		return
	}
	job, err := c.companyService.AddJob(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobResponse{Success: true, Job: job})
}

// EditJob changes a posted job
// @Summary Edit a job
// @Tags companies
// @Security BearerAuth
// @Param request body dto.EditJobRequest true "Job changes"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /company/edit_job [post]
func (c *CompanyController) EditJob(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.EditJobRequest
	if !bind(ctx, &req) {
		return
	}
	job, err := c.companyService.EditJob(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobResponse{Success: true, Job: job})
}

// ListEvents lists the caller's events
// @Summary List own events
// @Tags companies
// @Security BearerAuth
// @Success 200 {object} dto.CompanyEventsResponse
// @Router /company/events [get]
func (c *CompanyController) ListEvents(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	events, err := c.companyService.ListEvents(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyEventsResponse{Success: true, Events: events})
}

// AddEvent announces an event
// @Summary Add an event
// @Tags companies
// @Security BearerAuth
// @Param request body dto.CompanyEventRequest true "Event"
// @Success 200 {object} dto.CompanyEventResponse
// @Router /company/add_event [post]
func (c *CompanyController) AddEvent(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.CompanyEventRequest
	if !bind(ctx, &req) {
		return
	}
	event, err := c.companyService.AddEvent(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyEventResponse{Success: true, Event: event})
}

// DeleteEvent removes an event
// @Summary Delete an event
// @Tags companies
// @Security BearerAuth
// @Param request body dto.DeleteCompanyEventRequest true "Event id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /company/delete_event [post]
func (c *CompanyController) DeleteEvent(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.DeleteCompanyEventRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.companyService.DeleteEvent(ctx.Request.Context(), p, req.EventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Event deleted"))
}

// Stats summarises the caller's activity
// @Summary Company statistics
// @Tags companies
// @Security BearerAuth
// @Success 200 {object} dto.CompanyStatsResponse
// @Router /company/stats [get]
func (c *CompanyController) Stats(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	stats, err := c.companyService.Stats(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyStatsResponse{Success: true, Stats: *stats})
}

// ListApplications lists applications addressed to the caller
// @Summary Received applications
// @Tags companies
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationsResponse
// @Router /company/applications [get]
func (c *CompanyController) ListApplications(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	apps, err := c.companyService.ListApplications(ctx.Request.Context(), p)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ApplicationsResponse{Success: true, Applications: apps})
}

// AllCompanyJobs is the public job board
// @Summary All jobs of all companies
// @Description Newest first
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.AllJobsResponse
// @Router /all_company_jobs [get]
func (c *CompanyController) AllCompanyJobs(ctx *gin.Context) {
	jobs, err := c.companyService.AllCompanyJobs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AllJobsResponse{Success: true, Jobs: jobs})
}
