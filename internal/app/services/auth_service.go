package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/auth"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}._@+-]{1,64}$`)

// AuthService handles registration and login for both account kinds
type AuthService struct {
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	hasher      *auth.PasswordHasher
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		logger:      logger,
	}
}

func validateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return "", apperrors.NewInvalidInputError("username may only contain letters, digits and . _ @ + - (max 64)")
	}
	if password == "" {
		return "", apperrors.NewInvalidInputError("password is required")
	}
	return username, nil
}

// RegisterStudent creates a student account and signs it in
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentAuthResponse, error) {
	username, err := validateCredentials(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := models.NewStudent(username, strings.TrimSpace(req.Name), strings.TrimSpace(req.University), hash)
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn().Str("username", username).Msg("Student registration with existing username")
		}
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Student registered")
	return s.studentSession(student, "Registration successful")
}

// RegisterCompany creates a company account and signs it in
func (s *AuthService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*dto.CompanyAuthResponse, error) {
	username, err := validateCredentials(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := models.NewCompany(username, strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.Industry), hash)
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn().Str("username", username).Msg("Company registration with existing username")
		}
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Company registered")
	return s.companySession(company, "Registration successful")
}

// LoginStudent verifies credentials. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) LoginStudent(ctx context.Context, req *dto.LoginRequest) (*dto.StudentAuthResponse, error) {
	student, err := s.studentRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if student == nil || !s.hasher.Verify(req.Password, student.HashedPassword) {
		s.logger.Debug().Str("username", req.Username).Msg("Failed student login")
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.studentSession(student, "Login successful")
}

// LoginCompany verifies company credentials
func (s *AuthService) LoginCompany(ctx context.Context, req *dto.LoginRequest) (*dto.CompanyAuthResponse, error) {
	company, err := s.companyRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if company == nil || !s.hasher.Verify(req.Password, company.HashedPassword) {
		s.logger.Debug().Str("username", req.Username).Msg("Failed company login")
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.companySession(company, "Login successful")
}

func (s *AuthService) studentSession(student *models.Student, message string) (*dto.StudentAuthResponse, error) {
	token, expiresAt, err := s.jwtService.Issue(student.Username, models.RoleStudent.String())
	if err != nil {
		return nil, err
	}
	return &dto.StudentAuthResponse{
		Success:     true,
		Message:     message,
		AccessToken: token,
		TokenType:   dto.TokenType,
		ExpiresAt:   expiresAt.Unix(),
		Student:     student.Public(),
	}, nil
}

func (s *AuthService) companySession(company *models.Company, message string) (*dto.CompanyAuthResponse, error) {
	token, expiresAt, err := s.jwtService.Issue(company.Username, models.RoleCompany.String())
	if err != nil {
		return nil, err
	}
	return &dto.CompanyAuthResponse{
		Success:     true,
		Message:     message,
		AccessToken: token,
		TokenType:   dto.TokenType,
		ExpiresAt:   expiresAt.Unix(),
		Company:     company.Public(),
	}, nil
}
