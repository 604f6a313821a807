package repositories

import (
	"context"
	"sort"
	"strings"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// StudentRepository accesses the students collection, keyed by username
type StudentRepository struct {
	store *recordstore.Store
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(store *recordstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// GetByUsername returns the student or ErrStudentNotFound
func (r *StudentRepository) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	var students map[string]*models.Student
	if err := r.store.Load(ctx, CollectionStudents, &students); err != nil {
		return nil, err
	}
	s, ok := students[username]
	if !ok || s == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	s.Normalize()
	return s, nil
}

// Exists reports whether username is taken by a student
func (r *StudentRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Create inserts student, failing with ErrUsernameTaken on duplicates
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	var students map[string]*models.Student
	return r.store.Update(ctx, CollectionStudents, &students, func() error {
		if _, exists := students[student.Username]; exists {
			return apperrors.ErrUsernameTaken
		}
		students[student.Username] = student
		return nil
	})
}

// Update applies fn to the stored student and persists the result.
// Nothing is written when fn fails.
func (r *StudentRepository) Update(ctx context.Context, username string, fn func(*models.Student) error) (*models.Student, error) {
	var students map[string]*models.Student
	var updated *models.Student
	err := r.store.Update(ctx, CollectionStudents, &students, func() error {
		s, ok := students[username]
		if !ok || s == nil {
			return apperrors.ErrStudentNotFound
		}
		s.Normalize()
		if err := fn(s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns every student ordered by username
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	var students map[string]*models.Student
	if err := r.store.Load(ctx, CollectionStudents, &students); err != nil {
		return nil, err
	}
	out := make([]*models.Student, 0, len(students))
	for _, s := range students {
		if s == nil {
			continue
		}
		s.Normalize()
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Search returns students whose username, name or university contains query, case-insensitively
func (r *StudentRepository) Search(ctx context.Context, query string) ([]*models.Student, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]*models.Student, 0)
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Username), q) ||
			strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.University), q) {
			out = append(out, s)
		}
	}
	return out, nil
}
