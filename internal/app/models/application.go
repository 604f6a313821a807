package models

import "time"

// Initial status of a freshly submitted application
const StatusSubmitted = "Poslano"

// Application is a student's application for a job
type Application struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	JobName         string    `json:"job_name"`
	CompanyName     string    `json:"company_name"`
	CompanyUsername *string   `json:"company_username,omitempty"`
	JobID           *int      `json:"job_id,omitempty"`
	CV              string    `json:"cv"`
	CoverLetter     string    `json:"cover_letter"`
	CVUploaded      bool      `json:"cv_uploaded"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AddressedTo reports whether the application targets the company identified
// by username and display name. Applications without a company username fall
// back to matching the name.
func (a *Application) AddressedTo(companyUsername, companyName string) bool {
	if a.CompanyUsername != nil && *a.CompanyUsername != "" {
		return *a.CompanyUsername == companyUsername
	}
	if a.CompanyName == "" {
		return false
	}
	return a.CompanyName == companyUsername || (companyName != "" && a.CompanyName == companyName)
}

// Matches reports whether the application is the one identified by
// (username, jobName), narrowed by jobID when both sides carry one.
func (a *Application) Matches(username, jobName string, jobID *int) bool {
	if a.Username != username || a.JobName != jobName {
		return false
	}
	if jobID != nil && a.JobID != nil {
		return *jobID == *a.JobID
	}
	return true
}

// NextApplicationID returns the id after the highest one ever issued. lastIssued
// is the persisted high-water mark; ids still present in apps raise it, so data
// written before the mark existed keeps its ids unique.
func NextApplicationID(lastIssued int, apps []Application) int {
	for i := range apps {
		if apps[i].ID > lastIssued {
			lastIssued = apps[i].ID
		}
	}
	return lastIssued + 1
}
