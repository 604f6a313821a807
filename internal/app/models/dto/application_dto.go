package dto

import "github.com/unizg/careerhub/internal/app/models"

// ApplyRequest is the form part of an application; files travel separately
type ApplyRequest struct {
	Username    string `form:"username" binding:"required"`
	JobName     string `form:"job_name" binding:"required"`
	CompanyName string `form:"company_name"`
	JobID       *int   `form:"job_id"`
	UseSavedCV  bool   `form:"use_saved_cv"`
}

// WithdrawApplicationRequest identifies the application to remove
type WithdrawApplicationRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	JobName  string `form:"job_name" json:"job_name" binding:"required"`
	JobID    *int   `form:"job_id" json:"job_id"`
}

// UpdateStatusRequest changes the status of the application identified by (Username, JobName)
type UpdateStatusRequest struct {
	Username  string `form:"username" json:"username" binding:"required"`
	JobName   string `form:"job_name" json:"job_name" binding:"required"`
	JobID     *int   `form:"job_id" json:"job_id"`
	NewStatus string `form:"new_status" json:"new_status" binding:"required"`
}

// ApplicationResponse wraps one application
type ApplicationResponse struct {
	Success     bool                `json:"success" example:"true"`
	Message     string              `json:"message,omitempty"`
	Application *models.Application `json:"application"`
}

// ApplicationsResponse lists applications
type ApplicationsResponse struct {
	Success      bool                 `json:"success" example:"true"`
	Applications []models.Application `json:"applications"`
}

// NotificationsResponse lists a student's notifications
type NotificationsResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Notifications []models.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}
