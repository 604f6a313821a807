package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/middleware"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

const invalidLoginMessage = "Invalid username or password"

// AuthController handles registration and login for students and companies
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// loginFailed writes the soft failure shape clients check via the success flag
func loginFailed(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SoftFailure{Success: false, Message: invalidLoginMessage})
}

// RegisterStudent handles student registration
// @Summary Register a student
// @Description Creates a student account and returns an access token
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration data"
// @Success 200 {object} dto.StudentAuthResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// LoginStudent handles student login
// @Summary Student login
// @Description Wrong credentials return success=false with HTTP 200
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StudentAuthResponse
// @Router /login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.authService.LoginStudent(ctx.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			loginFailed(ctx)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegisterCompany handles company registration
// @Summary Register a company
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body dto.RegisterCompanyRequest true "Company registration data"
// @Success 200 {object} dto.CompanyAuthResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /register_company [post]
func (c *AuthController) RegisterCompany(ctx *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.authService.RegisterCompany(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// LoginCompany handles company login
// @Summary Company login
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.CompanyAuthResponse
// @Router /login_company [post]
func (c *AuthController) LoginCompany(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.authService.LoginCompany(ctx.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			loginFailed(ctx)
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
