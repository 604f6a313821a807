package services

import (
	"context"
	"sort"
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

// CompanyService manages a company's profile, jobs and events
type CompanyService struct {
	companyRepo     *repositories.CompanyRepository
	applicationRepo *repositories.ApplicationRepository
	guard           *appauth.Guard
	uploads         *uploads
	logger          zerolog.Logger
	now             func() time.Time
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	guard *appauth.Guard,
	files filestorage.FileStorage,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		guard:           guard,
		uploads:         newUploads(files, maxUploadBytes, logger),
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *CompanyService) authorize(p *appauth.Principal) error {
	return s.guard.Authorize(p, models.RoleCompany)
}

// GetProfile returns the caller's company profile
func (s *CompanyService) GetProfile(ctx context.Context, p *appauth.Principal) (*models.CompanyProfile, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	return company.Public(), nil
}

// UpdateProfile overwrites non-empty fields and optionally replaces the logo
func (s *CompanyService) UpdateProfile(ctx context.Context, p *appauth.Principal, req *dto.UpdateCompanyProfileRequest, logo *dto.UploadedFile) (*models.CompanyProfile, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}

	var logoName string
	if logo != nil && logo.Size() > 0 {
		name, err := s.uploads.store(ctx, p.Username, filestorage.PurposeLogo, logo, "logo")
		if err != nil {
			return nil, err
		}
		logoName = name
	}

	var previous string
	company, err := s.companyRepo.Update(ctx, p.Username, func(c *models.Company) error {
		overwrite(&c.CompanyName, req.CompanyName)
		overwrite(&c.Industry, req.Industry)
		overwrite(&c.About, req.About)
		overwrite(&c.Website, req.Website)
		overwrite(&c.ContactEmail, req.ContactEmail)
		if logoName != "" {
			previous = derefString(c.Logo)
			c.Logo = stringPtr(logoName)
		}
		return nil
	})
	if err != nil {
		s.uploads.remove(ctx, logoName)
		return nil, err
	}
	if previous != "" && previous != logoName {
		s.uploads.remove(ctx, previous)
	}
	return company.Public(), nil
}

// ListJobs returns the caller's jobs
func (s *CompanyService) ListJobs(ctx context.Context, p *appauth.Principal) ([]models.Job, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	return company.Public().JobsPosted, nil
}

// AddJob posts a job with id = number of jobs + 1
func (s *CompanyService) AddJob(ctx context.Context, p *appauth.Principal, req *dto.JobRequest) (*models.Job, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewInvalidInputError("job title is required")
	}

	var job models.Job
	_, err := s.companyRepo.Update(ctx, p.Username, func(c *models.Company) error {
		job = models.Job{
			ID:          len(c.JobsPosted) + 1,
			Title:       title,
			Description: strings.TrimSpace(req.Description),
			Location:    strings.TrimSpace(req.Location),
			Pay:         strings.TrimSpace(req.Pay),
			PostedAt:    s.now(),
		}
		c.JobsPosted = append(c.JobsPosted, job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("company", p.Username).Int("jobID", job.ID).Msg("Job posted")
	return &job, nil
}

// EditJob overwrites the non-empty fields of job req.JobID
func (s *CompanyService) EditJob(ctx context.Context, p *appauth.Principal, req *dto.EditJobRequest) (*models.Job, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}

	var job models.Job
	_, err := s.companyRepo.Update(ctx, p.Username, func(c *models.Company) error {
		i := c.FindJob(req.JobID)
		if i < 0 {
			return apperrors.ErrJobNotFound
		}
		j := &c.JobsPosted[i]
		overwrite(&j.Title, req.Title)
		overwrite(&j.Description, req.Description)
		overwrite(&j.Location, req.Location)
		overwrite(&j.Pay, req.Pay)
		now := s.now()
		j.UpdatedAt = &now
		job = *j
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListEvents returns the caller's events
func (s *CompanyService) ListEvents(ctx context.Context, p *appauth.Principal) ([]models.CompanyEvent, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	return company.Public().Events, nil
}

// AddEvent announces an event with id = highest id + 1
func (s *CompanyService) AddEvent(ctx context.Context, p *appauth.Principal, req *dto.CompanyEventRequest) (*models.CompanyEvent, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	title, date := strings.TrimSpace(req.Title), strings.TrimSpace(req.Date)
	if title == "" || date == "" {
		return nil, apperrors.NewInvalidInputError("event title and date are required")
	}

	var event models.CompanyEvent
	_, err := s.companyRepo.Update(ctx, p.Username, func(c *models.Company) error {
		event = models.CompanyEvent{ID: c.NextEventID(), Title: title, Date: date}
		c.Events = append(c.Events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes event eventID
func (s *CompanyService) DeleteEvent(ctx context.Context, p *appauth.Principal, eventID int) error {
	if err := s.authorize(p); err != nil {
		return err
	}
	_, err := s.companyRepo.Update(ctx, p.Username, func(c *models.Company) error {
		for i := range c.Events {
			if c.Events[i].ID == eventID {
				c.Events = append(c.Events[:i], c.Events[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrEventNotFound
	})
	return err
}

// ListApplications returns the applications addressed to the caller
func (s *CompanyService) ListApplications(ctx context.Context, p *appauth.Principal) ([]models.Application, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	return s.applicationRepo.Filter(ctx, func(a *models.Application) bool {
		return a.AddressedTo(company.Username, company.CompanyName)
	})
}

// Stats counts the caller's jobs, events and received applications
func (s *CompanyService) Stats(ctx context.Context, p *appauth.Principal) (*dto.CompanyStats, error) {
	if err := s.authorize(p); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	apps, err := s.applicationRepo.Filter(ctx, func(a *models.Application) bool {
		return a.AddressedTo(company.Username, company.CompanyName)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CompanyStats{
		Jobs:         len(company.JobsPosted),
		Events:       len(company.Events),
		Applications: len(apps),
	}, nil
}

// AllCompanyJobs flattens every company's jobs, newest first
func (s *CompanyService) AllCompanyJobs(ctx context.Context) ([]models.ListedJob, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.ListedJob, 0)
	for _, c := range companies {
		for _, j := range c.JobsPosted {
			jobs = append(jobs, models.ListedJob{
				JobID:           j.ID,
				Title:           j.Title,
				Description:     j.Description,
				Location:        j.Location,
				Pay:             j.Pay,
				PostedAt:        j.PostedAt,
				UpdatedAt:       j.UpdatedAt,
				CompanyName:     c.DisplayName(),
				CompanyUsername: c.Username,
				Industry:        c.Industry,
				Logo:            c.Logo,
			})
		}
	}

	sort.SliceStable(jobs, func(i, k int) bool {
		a, b := jobs[i], jobs[k]
		if !a.PostedAt.Equal(b.PostedAt) {
			return a.PostedAt.After(b.PostedAt)
		}
		if a.CompanyUsername != b.CompanyUsername {
			return a.CompanyUsername < b.CompanyUsername
		}
		return a.JobID < b.JobID
	})
	return jobs, nil
}
