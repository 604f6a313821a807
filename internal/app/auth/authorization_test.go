package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	pkgauth "github.com/unizg/careerhub/internal/pkg/auth"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

type fixture struct {
	guard *Guard
	jwt   *pkgauth.JWTService
	repos *repositories.Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend, err := recordstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	repos := repositories.NewRepositories(recordstore.New(backend))
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour})

	ctx := context.Background()
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Ana", "FER", "hash")))
	require.NoError(t, repos.CompanyRepository.Create(ctx, models.NewCompany("acme", "Acme", "IT", "hash")))

	return &fixture{
		guard: NewGuard(jwt, repos.StudentRepository, repos.CompanyRepository),
		jwt:   jwt,
		repos: repos,
	}
}

func (f *fixture) token(t *testing.T, username string, role models.Role) string {
	t.Helper()
	tok, _, err := f.jwt.Issue(username, role.String())
	require.NoError(t, err)
	return tok
}

func TestGuard_AuthenticateStudentAndCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.guard.Authenticate(ctx, f.token(t, "ana", models.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, "ana", p.Username)
	assert.Equal(t, models.RoleStudent, p.Role)
	require.NotNil(t, p.Student)
	assert.Nil(t, p.Company)

	p, err = f.guard.Authenticate(ctx, f.token(t, "acme", models.RoleCompany))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCompany, p.Role)
	require.NotNil(t, p.Company)
	assert.Equal(t, "Acme", p.Company.CompanyName)
}

func TestGuard_AuthenticateFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]string{
		"missing token":        "",
		"garbage":              "not.a.token",
		"unknown user":         f.token(t, "ghost", models.RoleStudent),
		"wrong namespace":      f.token(t, "acme", models.RoleStudent),
		"company not existing": f.token(t, "ana", models.RoleCompany),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.guard.Authenticate(ctx, tok)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}

	badRole, _, err := f.jwt.Issue("ana", "admin")
	require.NoError(t, err)
	_, err = f.guard.Authenticate(ctx, badRole)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGuard_AuthorizeAndOwnership(t *testing.T) {
	f := newFixture(t)
	student := &Principal{Username: "ana", Role: models.RoleStudent}
	company := &Principal{Username: "acme", Role: models.RoleCompany}

	assert.NoError(t, f.guard.Authorize(student, models.RoleStudent))
	assert.ErrorIs(t, f.guard.Authorize(student, models.RoleCompany), apperrors.ErrForbidden)
	assert.ErrorIs(t, f.guard.Authorize(company, models.RoleStudent), apperrors.ErrForbidden)

	assert.NoError(t, f.guard.AuthorizeOwner(student, "ana"))
	assert.ErrorIs(t, f.guard.AuthorizeOwner(student, "ivan"), apperrors.ErrForbidden)

	assert.ErrorIs(t, f.guard.AuthorizeStudentOwner(company, "acme"), apperrors.ErrForbidden)
	assert.ErrorIs(t, f.guard.AuthorizeOwner(nil, "ana"), apperrors.ErrUnauthorized)
}
