package repositories

import (
	"context"
	"fmt"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// ApplicationRepository accesses the applications list
type ApplicationRepository struct {
	store *recordstore.Store
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(store *recordstore.Store) *ApplicationRepository {
	return &ApplicationRepository{store: store}
}

// List returns all applications in submission order
func (r *ApplicationRepository) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := r.store.Load(ctx, CollectionApplications, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByUsername returns the applications submitted by username
func (r *ApplicationRepository) ListByUsername(ctx context.Context, username string) ([]models.Application, error) {
	return r.Filter(ctx, func(a *models.Application) bool { return a.Username == username })
}

// Filter returns the applications for which keep is true
func (r *ApplicationRepository) Filter(ctx context.Context, keep func(*models.Application) bool) ([]models.Application, error) {
	apps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Application, 0)
	for i := range apps {
		if keep(&apps[i]) {
			out = append(out, apps[i])
		}
	}
	return out, nil
}

// Create assigns the next id to app and appends it. check, when non-nil, runs
// against every stored application first; an error from it aborts the insert.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application, check func(existing *models.Application) error) error {
	var apps []models.Application
	return r.store.Update(ctx, CollectionApplications, &apps, func() error {
		if check != nil {
			for i := range apps {
				if err := check(&apps[i]); err != nil {
					return err
				}
			}
		}
		id, err := r.allocateID(ctx, apps)
		if err != nil {
			return err
		}
		app.ID = id
		apps = append(apps, *app)
		return nil
	})
}

// allocateID bumps the persisted application counter. Callers hold the
// applications lock, so the counters lock is always taken second.
func (r *ApplicationRepository) allocateID(ctx context.Context, apps []models.Application) (int, error) {
	var counters map[string]int
	var id int
	err := r.store.Update(ctx, CollectionCounters, &counters, func() error {
		id = models.NextApplicationID(counters[CollectionApplications], apps)
		counters[CollectionApplications] = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate application id: %w", err)
	}
	return id, nil
}

// Mutate runs fn over the whole list under the collection lock and saves the result
func (r *ApplicationRepository) Mutate(ctx context.Context, fn func(apps *[]models.Application) error) error {
	var apps []models.Application
	return r.store.Update(ctx, CollectionApplications, &apps, func() error {
		return fn(&apps)
	})
}
