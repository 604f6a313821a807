package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

// StudentController exposes the student profile endpoints
type StudentController struct {
	studentService *services.StudentService
	maxUploadBytes int64
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, maxUploadBytes int64) *StudentController {
	return &StudentController{studentService: studentService, maxUploadBytes: maxUploadBytes}
}

func (c *StudentController) respond(ctx *gin.Context, profile *models.StudentProfile, err error, message string) {
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{Success: true, Message: message, Student: profile})
}

// GetProfile returns the caller's own profile
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} dto.StudentResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /student/{username} [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	profile, err := c.studentService.GetProfile(ctx.Request.Context(), p, ctx.Param("username"))
	c.respond(ctx, profile, err, "")
}

// UpdateProfile updates name, university and about
// @Summary Update student profile
// @Tags students
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Fields to change"
// @Success 200 {object} dto.StudentResponse
// @Router /update_profile [post]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UpdateStudentProfileRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.UpdateProfile(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Profile updated")
}

// UploadProfile stores a profile image or CV depending on the file type
// @Summary Upload profile image or CV
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param username formData string true "Username"
// @Param file formData file true "Image (jpg, jpeg, png) or document (pdf, doc, docx)"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Router /upload_profile [post]
func (c *StudentController) UploadProfile(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UsernameRequest
	if !bind(ctx, &req) {
		return
	}
	file, err := readUpload(ctx, "file", c.maxUploadBytes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if file == nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidInputError("file is required"))
		return
	}
	resp, err := c.studentService.UploadProfileFile(ctx.Request.Context(), p, req.Username, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteProfileImage removes the profile picture
// @Summary Delete profile image
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UsernameRequest true "Owner"
// @Success 200 {object} dto.StudentResponse
// @Router /delete_profile_image [post]
func (c *StudentController) DeleteProfileImage(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UsernameRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.DeleteProfileImage(ctx.Request.Context(), p, req.Username)
	c.respond(ctx, profile, err, "Profile image deleted")
}

// DeleteCV removes the saved CV
// @Summary Delete saved CV
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param username formData string true "Owner"
// @Success 200 {object} dto.StudentResponse
// @Router /delete_cv [post]
func (c *StudentController) DeleteCV(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.UsernameRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.DeleteCV(ctx.Request.Context(), p, req.Username)
	c.respond(ctx, profile, err, "CV deleted")
}

// RegisterEvent signs the student up for an event
// @Summary Register for an event
// @Tags students
// @Security BearerAuth
// @Param request body dto.EventRegistrationRequest true "Event"
// @Success 200 {object} dto.StudentResponse
// @Router /register_event [post]
func (c *StudentController) RegisterEvent(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.EventRegistrationRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.RegisterEvent(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Registered for event")
}

// UnregisterEvent cancels an event registration
// @Summary Unregister from an event
// @Tags students
// @Security BearerAuth
// @Param request body dto.EventRegistrationRequest true "Event"
// @Success 200 {object} dto.StudentResponse
// @Router /unregister_event [post]
func (c *StudentController) UnregisterEvent(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.EventRegistrationRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.UnregisterEvent(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Unregistered from event")
}

// AddMeeting adds an agenda entry
// @Summary Add a meeting
// @Tags students
// @Security BearerAuth
// @Param request body dto.AddMeetingRequest true "Meeting"
// @Success 200 {object} dto.StudentResponse
// @Router /add_meeting [post]
func (c *StudentController) AddMeeting(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.AddMeetingRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.AddMeeting(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Meeting added")
}

// DeleteMeeting removes an agenda entry by position
// @Summary Delete a meeting
// @Tags students
// @Security BearerAuth
// @Param request body dto.DeleteMeetingRequest true "Meeting index"
// @Success 200 {object} dto.StudentResponse
// @Router /delete_meeting [post]
func (c *StudentController) DeleteMeeting(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.DeleteMeetingRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.DeleteMeeting(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Meeting deleted")
}

// AddConnection connects with another student
// @Summary Add a connection
// @Tags students
// @Security BearerAuth
// @Param request body dto.ConnectionRequest true "Connection"
// @Success 200 {object} dto.StudentResponse
// @Router /add_connection [post]
func (c *StudentController) AddConnection(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.ConnectionRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.AddConnection(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Connection added")
}

// RemoveConnection drops a connection
// @Summary Remove a connection
// @Tags students
// @Security BearerAuth
// @Param request body dto.ConnectionRequest true "Connection"
// @Success 200 {object} dto.StudentResponse
// @Router /remove_connection [post]
func (c *StudentController) RemoveConnection(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.ConnectionRequest
	if !bind(ctx, &req) {
		return
	}
	profile, err := c.studentService.RemoveConnection(ctx.Request.Context(), p, &req)
	c.respond(ctx, profile, err, "Connection removed")
}

// SearchStudents finds students by username, name or university
// @Summary Search students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param query query string false "Search text"
// @Success 200 {object} dto.StudentCardsResponse
// @Router /students [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	cards, err := c.studentService.SearchStudents(ctx.Request.Context(), p, ctx.Query("query"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentCardsResponse{Success: true, Students: cards})
}

// GetPublicProfile returns another student's public card
// @Summary Public student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} dto.StudentCardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student_public/{username} [get]
func (c *StudentController) GetPublicProfile(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	card, err := c.studentService.GetPublicProfile(ctx.Request.Context(), p, ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentCardResponse{Success: true, Student: card})
}
