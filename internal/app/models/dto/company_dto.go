package dto

import "github.com/unizg/careerhub/internal/app/models"

// UpdateCompanyProfileRequest overwrites only non-empty fields; the logo comes as a separate file
type UpdateCompanyProfileRequest struct {
	CompanyName  string `form:"company_name" json:"company_name"`
	Industry     string `form:"industry" json:"industry"`
	About        string `form:"about" json:"about"`
	Website      string `form:"website" json:"website"`
	ContactEmail string `form:"contact_email" json:"contact_email" binding:"omitempty,email"`
}

// JobRequest creates a job
type JobRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Location    string `form:"location" json:"location"`
	Pay         string `form:"pay" json:"pay"`
}

// EditJobRequest updates the job with JobID
type EditJobRequest struct {
	JobID       int    `form:"job_id" json:"job_id" binding:"required"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Location    string `form:"location" json:"location"`
	Pay         string `form:"pay" json:"pay"`
}

// CompanyEventRequest creates a company event
type CompanyEventRequest struct {
	Title string `form:"title" json:"title" binding:"required"`
	Date  string `form:"date" json:"date" binding:"required"`
}

// DeleteCompanyEventRequest deletes the event with EventID
type DeleteCompanyEventRequest struct {
	EventID int `form:"event_id" json:"event_id" binding:"required"`
}

// CompanyResponse wraps a company projection
type CompanyResponse struct {
	Success bool                   `json:"success" example:"true"`
	Message string                 `json:"message,omitempty"`
	Company *models.CompanyProfile `json:"company"`
}

// JobsResponse lists one company's jobs
type JobsResponse struct {
	Success bool         `json:"success" example:"true"`
	Jobs    []models.Job `json:"jobs"`
}

// JobResponse wraps a single job
type JobResponse struct {
	Success bool        `json:"success" example:"true"`
	Job     *models.Job `json:"job"`
}

// CompanyEventsResponse lists a company's events
type CompanyEventsResponse struct {
	Success bool                  `json:"success" example:"true"`
	Events  []models.CompanyEvent `json:"events"`
}

// CompanyEventResponse wraps one event
type CompanyEventResponse struct {
	Success bool                 `json:"success" example:"true"`
	Event   *models.CompanyEvent `json:"event"`
}

// CompanyStats summarises a company's activity
type CompanyStats struct {
	Jobs         int `json:"jobs"`
	Events       int `json:"events"`
	Applications int `json:"applications"`
}

// CompanyStatsResponse wraps CompanyStats
type CompanyStatsResponse struct {
	Success bool         `json:"success" example:"true"`
	Stats   CompanyStats `json:"stats"`
}

// AllJobsResponse is the public job board
type AllJobsResponse struct {
	Success bool               `json:"success" example:"true"`
	Jobs    []models.ListedJob `json:"jobs"`
}
