package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
)

// ApplicationService handles job applications and their status changes
type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	companyRepo     *repositories.CompanyRepository
	notifications   *NotificationService
	guard           *appauth.Guard
	uploads         *uploads
	logger          zerolog.Logger
	now             func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	companyRepo *repositories.CompanyRepository,
	notifications *NotificationService,
	guard *appauth.Guard,
	files filestorage.FileStorage,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		companyRepo:     companyRepo,
		notifications:   notifications,
		guard:           guard,
		uploads:         newUploads(files, maxUploadBytes, logger),
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Apply registers an application. Both files are written before the record;
// any failure after the first write removes what was written.
func (s *ApplicationService) Apply(ctx context.Context, p *appauth.Principal, req *dto.ApplyRequest, cv, coverLetter *dto.UploadedFile) (*models.Application, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	jobName := strings.TrimSpace(req.JobName)
	if jobName == "" {
		return nil, apperrors.NewInvalidInputError("job_name is required")
	}

	student, err := s.studentRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	savedCV := derefString(student.CV)
	if req.UseSavedCV {
		if savedCV == "" {
			return nil, apperrors.NewInvalidInputError("no saved CV found; upload a CV first")
		}
	} else if err := s.uploads.validate(filestorage.PurposeCV, cv, "cv_file"); err != nil {
		return nil, err
	}
	if err := s.uploads.validate(filestorage.PurposeCoverLetter, coverLetter, "cover_letter"); err != nil {
		return nil, err
	}

	companyUsername := s.resolveCompany(ctx, req.CompanyName)

	var written []string
	rollback := func() {
		for _, name := range written {
			s.uploads.remove(ctx, name)
		}
	}

	// the application always owns its CV file, so replacing or deleting the
	// profile CV later leaves it intact
	var cvName string
	if req.UseSavedCV {
		cvName, err = s.uploads.copy(ctx, req.Username, filestorage.PurposeCV, savedCV)
	} else {
		cvName, err = s.uploads.store(ctx, req.Username, filestorage.PurposeCV, cv, "cv_file")
	}
	if err != nil {
		return nil, err
	}
	written = append(written, cvName)
	coverName, err := s.uploads.store(ctx, req.Username, filestorage.PurposeCoverLetter, coverLetter, "cover_letter")
	if err != nil {
		rollback()
		return nil, err
	}
	written = append(written, coverName)

	now := s.now()
	app := models.Application{
		Username:        req.Username,
		JobName:         jobName,
		CompanyName:     strings.TrimSpace(req.CompanyName),
		CompanyUsername: companyUsername,
		JobID:           req.JobID,
		CV:              cvName,
		CoverLetter:     coverName,
		CVUploaded:      true,
		Status:          models.StatusSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = s.applicationRepo.Create(ctx, &app, func(existing *models.Application) error {
		if existing.Matches(app.Username, app.JobName, app.JobID) && sameCompany(existing, &app) {
			return apperrors.NewConflictError("you have already applied for this job")
		}
		return nil
	})
	if err != nil {
		rollback()
		return nil, err
	}

	s.logger.Info().Int("applicationID", app.ID).Str("username", app.Username).Str("job", app.JobName).Msg("Application submitted")
	return &app, nil
}

func sameCompany(a, b *models.Application) bool {
	if a.CompanyUsername != nil && b.CompanyUsername != nil {
		return *a.CompanyUsername == *b.CompanyUsername
	}
	return a.CompanyName == b.CompanyName
}

// resolveCompany maps a company name or username to a registered company username
func (s *ApplicationService) resolveCompany(ctx context.Context, name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if c, err := s.companyRepo.GetByUsername(ctx, name); err == nil {
		return stringPtr(c.Username)
	}
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list companies while resolving application target")
		return nil
	}
	for _, c := range companies {
		if strings.EqualFold(c.CompanyName, name) {
			return stringPtr(c.Username)
		}
	}
	return nil
}

// ListForStudent returns the student's own applications
func (s *ApplicationService) ListForStudent(ctx context.Context, p *appauth.Principal, username string) ([]models.Application, error) {
	if err := s.guard.AuthorizeStudentOwner(p, username); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByUsername(ctx, username)
}

// Withdraw removes the caller's application along with the files written for it
func (s *ApplicationService) Withdraw(ctx context.Context, p *appauth.Principal, req *dto.WithdrawApplicationRequest) error {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return err
	}

	var removed models.Application
	err := s.applicationRepo.Mutate(ctx, func(apps *[]models.Application) error {
		for i := range *apps {
			if (*apps)[i].Matches(req.Username, req.JobName, req.JobID) {
				removed = (*apps)[i]
				*apps = append((*apps)[:i], (*apps)[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrApplicationNotFound
	})
	if err != nil {
		return err
	}

	s.uploads.remove(ctx, removed.CoverLetter)
	if removed.CVUploaded {
		s.uploads.remove(ctx, removed.CV)
	}
	s.logger.Info().Int("applicationID", removed.ID).Str("username", removed.Username).Msg("Application withdrawn")
	return nil
}

// UpdateStatus changes the status of an application addressed to the calling
// company and notifies the applicant. Nothing is notified when no application matches.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p *appauth.Principal, req *dto.UpdateStatusRequest) (*models.Application, error) {
	if err := s.guard.Authorize(p, models.RoleCompany); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(req.NewStatus)
	if status == "" {
		return nil, apperrors.NewInvalidInputError("new_status is required")
	}
	companyName := ""
	if p.Company != nil {
		companyName = p.Company.CompanyName
	}

	var updated models.Application
	err := s.applicationRepo.Mutate(ctx, func(apps *[]models.Application) error {
		for i := range *apps {
			a := &(*apps)[i]
			if a.AddressedTo(p.Username, companyName) && a.Matches(req.Username, req.JobName, req.JobID) {
				a.Status = status
				a.UpdatedAt = s.now()
				updated = *a
				return nil
			}
		}
		return apperrors.ErrApplicationNotFound
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your application for '%s' is now: %s", updated.JobName, status)
	if err := s.notifications.Notify(ctx, updated.Username, message); err != nil {
		// the status change is already committed
		s.logger.Error().Err(err).Int("applicationID", updated.ID).Str("username", updated.Username).Msg("Failed to store status notification")
	}
	return &updated, nil
}
