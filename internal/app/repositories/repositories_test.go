package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

func newRepos(t *testing.T) *Repositories {
	t.Helper()
	backend, err := recordstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return NewRepositories(recordstore.New(backend))
}

func TestStudentRepository_CreateGetConflict(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Ana", "UNIZG", "h1")))

	err := repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Other", "X", "h2"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	got, err := repos.StudentRepository.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "h1", got.HashedPassword)

	_, err = repos.StudentRepository.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ok, err := repos.StudentRepository.Exists(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStudentRepository_UpdateRollsBackOnError(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Ana", "", "h")))

	boom := errors.New("boom")
	_, err := repos.StudentRepository.Update(ctx, "ana", func(s *models.Student) error {
		s.Name = "Changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.StudentRepository.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	updated, err := repos.StudentRepository.Update(ctx, "ana", func(s *models.Student) error {
		s.About = "hello"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.About)

	_, err = repos.StudentRepository.Update(ctx, "ghost", func(*models.Student) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStudentRepository_Search(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Ana Horvat", "FER", "h")))
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ivan", "Ivan Kovač", "PMF", "h")))

	found, err := repos.StudentRepository.Search(ctx, "kovač")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ivan", found[0].Username)

	found, err = repos.StudentRepository.Search(ctx, "fer")
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := repos.StudentRepository.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "ana", all[0].Username)
}

func TestCompanyRepository_CreateUpdateList(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.CompanyRepository.Create(ctx, models.NewCompany("acme", "Acme", "IT", "h")))
	assert.ErrorIs(t, repos.CompanyRepository.Create(ctx, models.NewCompany("acme", "", "", "h")), apperrors.ErrConflict)

	// students and companies are separate namespaces
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("acme", "", "", "h")))

	_, err := repos.CompanyRepository.Update(ctx, "acme", func(c *models.Company) error {
		c.JobsPosted = append(c.JobsPosted, models.Job{ID: 1, Title: "Intern"})
		return nil
	})
	require.NoError(t, err)

	list, err := repos.CompanyRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Intern", list[0].JobsPosted[0].Title)
}

func TestApplicationRepository_MonotonicIDs(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	for _, user := range []string{"ana", "ivan", "ana"} {
		require.NoError(t, repos.ApplicationRepository.Create(ctx, &models.Application{Username: user, JobName: "Intern"}, nil))
	}

	apps, err := repos.ApplicationRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{apps[0].ID, apps[1].ID, apps[2].ID})

	mine, err := repos.ApplicationRepository.ListByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, repos.ApplicationRepository.Mutate(ctx, func(apps *[]models.Application) error {
		*apps = (*apps)[:2]
		return nil
	}))
	next := &models.Application{Username: "eva"}
	require.NoError(t, repos.ApplicationRepository.Create(ctx, next, nil))
	assert.Equal(t, 4, next.ID, "a removed id is never issued again")

	require.NoError(t, repos.ApplicationRepository.Mutate(ctx, func(apps *[]models.Application) error {
		*apps = (*apps)[:0]
		return nil
	}))
	last := &models.Application{Username: "ivo"}
	require.NoError(t, repos.ApplicationRepository.Create(ctx, last, nil))
	assert.Equal(t, 5, last.ID)
}

func TestApplicationRepository_CreateCheckAbortsInsert(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.ApplicationRepository.Create(ctx, &models.Application{Username: "ana", JobName: "Intern"}, nil))

	duplicate := errors.New("duplicate")
	err := repos.ApplicationRepository.Create(ctx, &models.Application{Username: "ana", JobName: "Intern"},
		func(existing *models.Application) error {
			if existing.Username == "ana" {
				return duplicate
			}
			return nil
		})
	assert.ErrorIs(t, err, duplicate)

	apps, err := repos.ApplicationRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	next := &models.Application{Username: "ivan", JobName: "Intern"}
	require.NoError(t, repos.ApplicationRepository.Create(ctx, next, nil))
	assert.Equal(t, 2, next.ID)
}

func TestNotificationRepository_ListNewestFirstAndMarkRead(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.NotificationRepository.Append(ctx, models.Notification{Username: "ana", Message: "first"}))
	require.NoError(t, repos.NotificationRepository.Append(ctx, models.Notification{Username: "ivan", Message: "other"}))
	require.NoError(t, repos.NotificationRepository.Append(ctx, models.Notification{Username: "ana", Message: "second"}))

	list, err := repos.NotificationRepository.ListByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	changed, err := repos.NotificationRepository.MarkAllRead(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	list, err = repos.NotificationRepository.ListByUsername(ctx, "ivan")
	require.NoError(t, err)
	assert.False(t, list[0].Read)
}

func TestAdviceRepository_CreateAndReply(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	post := &models.AdvicePost{Question: "Kako napisati CV?"}
	require.NoError(t, repos.AdviceRepository.Create(ctx, post))
	assert.Equal(t, 1, post.ID)
	assert.NotNil(t, post.Tags)

	updated, err := repos.AdviceRepository.AddReply(ctx, 1, models.Reply{Username: "ana", Reply: "Kratko i jasno."})
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)

	_, err = repos.AdviceRepository.AddReply(ctx, 42, models.Reply{Username: "ana", Reply: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
