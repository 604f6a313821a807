package dto

import "github.com/unizg/careerhub/internal/app/models"

// TokenType is the scheme clients put in the Authorization header
const TokenType = "bearer"

// RegisterStudentRequest represents student registration data
type RegisterStudentRequest struct {
	Username   string `form:"username" json:"username" binding:"required,max=64"`
	Password   string `form:"password" json:"password" binding:"required"`
	Name       string `form:"name" json:"name"`
	University string `form:"university" json:"university"`
}

// RegisterCompanyRequest represents company registration data
type RegisterCompanyRequest struct {
	Username    string `form:"username" json:"username" binding:"required,max=64"`
	Password    string `form:"password" json:"password" binding:"required"`
	CompanyName string `form:"company_name" json:"company_name"`
	Industry    string `form:"industry" json:"industry"`
}

// LoginRequest represents login credentials for either role
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// StudentAuthResponse is returned by student register/login
type StudentAuthResponse struct {
	Success     bool                   `json:"success" example:"true"`
	Message     string                 `json:"message,omitempty"`
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type" example:"bearer"`
	ExpiresAt   int64                  `json:"expires_at"`
	Student     *models.StudentProfile `json:"student"`
}

// CompanyAuthResponse is returned by company register/login
type CompanyAuthResponse struct {
	Success     bool                   `json:"success" example:"true"`
	Message     string                 `json:"message,omitempty"`
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type" example:"bearer"`
	ExpiresAt   int64                  `json:"expires_at"`
	Company     *models.CompanyProfile `json:"company"`
}
