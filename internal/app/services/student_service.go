package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
)

// StudentService manages student profiles, uploads, events, meetings and connections
type StudentService struct {
	studentRepo *repositories.StudentRepository
	guard       *appauth.Guard
	uploads     *uploads
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	guard *appauth.Guard,
	files filestorage.FileStorage,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		guard:       guard,
		uploads:     newUploads(files, maxUploadBytes, logger),
		logger:      logger,
	}
}

// GetProfile returns the caller's own full profile
func (s *StudentService) GetProfile(ctx context.Context, p *appauth.Principal, username string) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, username); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// UpdateProfile overwrites the non-empty free-text fields
func (s *StudentService) UpdateProfile(ctx context.Context, p *appauth.Principal, req *dto.UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		overwrite(&st.Name, req.Name)
		overwrite(&st.University, req.University)
		overwrite(&st.About, req.About)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// UploadProfileFile stores an image as the profile picture or a document as
// the CV, replacing and deleting the previous file of the same kind only.
func (s *StudentService) UploadProfileFile(ctx context.Context, p *appauth.Principal, username string, file *dto.UploadedFile) (*dto.UploadResponse, error) {
	if err := s.guard.AuthorizeStudentOwner(p, username); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.NewInvalidInputError("file is required")
	}

	var purpose filestorage.Purpose
	var field string
	switch {
	case filestorage.IsImage(file.Filename):
		purpose, field = filestorage.PurposeProfileImage, "profile_image"
	case filestorage.IsDocument(file.Filename):
		purpose, field = filestorage.PurposeCV, "cv"
	default:
		return nil, apperrors.NewInvalidInputError("invalid file type; allowed: .jpg, .jpeg, .png, .pdf, .doc, .docx")
	}

	name, err := s.uploads.store(ctx, username, purpose, file, "file")
	if err != nil {
		return nil, err
	}

	var previous string
	student, err := s.studentRepo.Update(ctx, username, func(st *models.Student) error {
		if purpose == filestorage.PurposeProfileImage {
			previous = derefString(st.ProfileImage)
			st.ProfileImage = stringPtr(name)
		} else {
			previous = derefString(st.CV)
			st.CV = stringPtr(name)
		}
		return nil
	})
	if err != nil {
		s.uploads.remove(ctx, name)
		return nil, err
	}
	if previous != "" && previous != name {
		s.uploads.remove(ctx, previous)
	}

	s.logger.Info().Str("username", username).Str("field", field).Str("file", name).Msg("Profile file uploaded")
	return &dto.UploadResponse{Success: true, Filename: name, Field: field, Student: student.Public()}, nil
}

// DeleteProfileImage clears the profile picture and removes the file
func (s *StudentService) DeleteProfileImage(ctx context.Context, p *appauth.Principal, username string) (*models.StudentProfile, error) {
	return s.clearFile(ctx, p, username, func(st *models.Student) *string {
		old := st.ProfileImage
		st.ProfileImage = nil
		return old
	})
}

// DeleteCV clears the saved CV and removes the file
func (s *StudentService) DeleteCV(ctx context.Context, p *appauth.Principal, username string) (*models.StudentProfile, error) {
	return s.clearFile(ctx, p, username, func(st *models.Student) *string {
		old := st.CV
		st.CV = nil
		return old
	})
}

func (s *StudentService) clearFile(ctx context.Context, p *appauth.Principal, username string, clear func(*models.Student) *string) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, username); err != nil {
		return nil, err
	}
	var old string
	student, err := s.studentRepo.Update(ctx, username, func(st *models.Student) error {
		old = derefString(clear(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.uploads.remove(ctx, old)
	return student.Public(), nil
}

// RegisterEvent adds eventID to the student's events; repeating it is a no-op
func (s *StudentService) RegisterEvent(ctx context.Context, p *appauth.Principal, req *dto.EventRegistrationRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	if req.EventID <= 0 {
		return nil, apperrors.NewInvalidInputError("event_id must be positive")
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		if !st.HasEvent(req.EventID) {
			st.RegisteredEvents = append(st.RegisteredEvents, req.EventID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// UnregisterEvent removes eventID; unknown ids are ignored
func (s *StudentService) UnregisterEvent(ctx context.Context, p *appauth.Principal, req *dto.EventRegistrationRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		kept := st.RegisteredEvents[:0]
		for _, id := range st.RegisteredEvents {
			if id != req.EventID {
				kept = append(kept, id)
			}
		}
		st.RegisteredEvents = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// AddMeeting appends a meeting to the agenda
func (s *StudentService) AddMeeting(ctx context.Context, p *appauth.Principal, req *dto.AddMeetingRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	meeting := models.Meeting{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        strings.TrimSpace(req.Date),
	}
	if meeting.Title == "" || meeting.Date == "" {
		return nil, apperrors.NewInvalidInputError("meeting title and date are required")
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		st.Meetings = append(st.Meetings, meeting)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// DeleteMeeting removes the meeting at the given position
func (s *StudentService) DeleteMeeting(ctx context.Context, p *appauth.Principal, req *dto.DeleteMeetingRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	if req.Index == nil {
		return nil, apperrors.NewInvalidInputError("index is required")
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		i := *req.Index
		if i < 0 || i >= len(st.Meetings) {
			return apperrors.NewNotFoundError("meeting not found")
		}
		st.Meetings = append(st.Meetings[:i], st.Meetings[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// AddConnection connects the caller with another existing student
func (s *StudentService) AddConnection(ctx context.Context, p *appauth.Principal, req *dto.ConnectionRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	target := strings.TrimSpace(req.Target)
	if target == req.Username {
		return nil, apperrors.NewInvalidInputError("cannot connect with yourself")
	}
	if _, err := s.studentRepo.GetByUsername(ctx, target); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		if !st.HasConnection(target) {
			st.Connections = append(st.Connections, target)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// RemoveConnection drops target from the caller's connections
func (s *StudentService) RemoveConnection(ctx context.Context, p *appauth.Principal, req *dto.ConnectionRequest) (*models.StudentProfile, error) {
	if err := s.guard.AuthorizeStudentOwner(p, req.Username); err != nil {
		return nil, err
	}
	target := strings.TrimSpace(req.Target)
	student, err := s.studentRepo.Update(ctx, req.Username, func(st *models.Student) error {
		kept := st.Connections[:0]
		for _, u := range st.Connections {
			if u != target {
				kept = append(kept, u)
			}
		}
		st.Connections = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return student.Public(), nil
}

// SearchStudents returns public cards matching query for any signed-in caller
func (s *StudentService) SearchStudents(ctx context.Context, p *appauth.Principal, query string) ([]*models.StudentCard, error) {
	if p == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	students, err := s.studentRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	cards := make([]*models.StudentCard, 0, len(students))
	for _, st := range students {
		cards = append(cards, st.Card())
	}
	return cards, nil
}

// GetPublicProfile returns another student's public card
func (s *StudentService) GetPublicProfile(ctx context.Context, p *appauth.Principal, username string) (*models.StudentCard, error) {
	if p == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	student, err := s.studentRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return student.Card(), nil
}
