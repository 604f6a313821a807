package dto

import "github.com/unizg/careerhub/internal/app/models"

// UsernameRequest carries the username of the resource owner
type UsernameRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
}

// UpdateStudentProfileRequest overwrites only non-empty fields
type UpdateStudentProfileRequest struct {
	Username   string `form:"username" json:"username" binding:"required"`
	Name       string `form:"name" json:"name"`
	University string `form:"university" json:"university"`
	About      string `form:"about" json:"about"`
}

// EventRegistrationRequest registers or unregisters a student for an event
type EventRegistrationRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	EventID  int    `form:"event_id" json:"event_id" binding:"required"`
}

// AddMeetingRequest appends a meeting to the student's agenda
type AddMeetingRequest struct {
	Username    string `form:"username" json:"username" binding:"required"`
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date" binding:"required"`
}

// DeleteMeetingRequest removes the meeting at Index
type DeleteMeetingRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Index    *int   `form:"index" json:"index" binding:"required"`
}

// ConnectionRequest adds or removes a connection
type ConnectionRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Target   string `form:"target" json:"target" binding:"required"`
}

// StudentResponse wraps a full student projection
type StudentResponse struct {
	Success bool                   `json:"success" example:"true"`
	Message string                 `json:"message,omitempty"`
	Student *models.StudentProfile `json:"student"`
}

// UploadResponse reports the stored name of an upload
type UploadResponse struct {
	Success  bool                   `json:"success" example:"true"`
	Filename string                 `json:"filename"`
	Field    string                 `json:"field" example:"profile_image"`
	Student  *models.StudentProfile `json:"student,omitempty"`
}

// StudentCardsResponse lists public student cards
type StudentCardsResponse struct {
	Success  bool                  `json:"success" example:"true"`
	Students []*models.StudentCard `json:"students"`
}

// StudentCardResponse wraps one public student card
type StudentCardResponse struct {
	Success bool                `json:"success" example:"true"`
	Student *models.StudentCard `json:"student"`
}
