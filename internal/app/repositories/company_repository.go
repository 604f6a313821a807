package repositories

import (
	"context"
	"sort"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// CompanyRepository accesses the companies collection, keyed by username
type CompanyRepository struct {
	store *recordstore.Store
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(store *recordstore.Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

// GetByUsername returns the company or ErrCompanyNotFound
func (r *CompanyRepository) GetByUsername(ctx context.Context, username string) (*models.Company, error) {
	var companies map[string]*models.Company
	if err := r.store.Load(ctx, CollectionCompanies, &companies); err != nil {
		return nil, err
	}
	c, ok := companies[username]
	if !ok || c == nil {
		return nil, apperrors.ErrCompanyNotFound
	}
	c.Normalize()
	return c, nil
}

// Create inserts company, failing with ErrUsernameTaken on duplicates
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	var companies map[string]*models.Company
	return r.store.Update(ctx, CollectionCompanies, &companies, func() error {
		if _, exists := companies[company.Username]; exists {
			return apperrors.ErrUsernameTaken
		}
		companies[company.Username] = company
		return nil
	})
}

// Update applies fn to the stored company and persists the result.
// Nothing is written when fn fails.
func (r *CompanyRepository) Update(ctx context.Context, username string, fn func(*models.Company) error) (*models.Company, error) {
	var companies map[string]*models.Company
	var updated *models.Company
	err := r.store.Update(ctx, CollectionCompanies, &companies, func() error {
		c, ok := companies[username]
		if !ok || c == nil {
			return apperrors.ErrCompanyNotFound
		}
		c.Normalize()
		if err := fn(c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns every company ordered by username
func (r *CompanyRepository) List(ctx context.Context) ([]*models.Company, error) {
	var companies map[string]*models.Company
	if err := r.store.Load(ctx, CollectionCompanies, &companies); err != nil {
		return nil, err
	}
	out := make([]*models.Company, 0, len(companies))
	for _, c := range companies {
		if c == nil {
			continue
		}
		c.Normalize()
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
