package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/auth"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []string
}

func (p *recordingPublisher) Notify(username, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, username+": "+content)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type fixture struct {
	dataDir       string
	repos         *repositories.Repositories
	files         *filestorage.LocalStorage
	guard         *appauth.Guard
	publisher     *recordingPublisher
	auth          *AuthService
	students      *StudentService
	companies     *CompanyService
	applications  *ApplicationService
	notifications *NotificationService
	advice        *AdviceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()

	dataDir := t.TempDir()
	backend, err := recordstore.NewFileBackend(dataDir)
	require.NoError(t, err)
	repos := repositories.NewRepositories(recordstore.New(backend))
	files, err := filestorage.NewLocalStorage(t.TempDir(), logger)
	require.NoError(t, err)

	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	guard := appauth.NewGuard(jwt, repos.StudentRepository, repos.CompanyRepository)
	publisher := &recordingPublisher{}
	notifications := NewNotificationService(repos.NotificationRepository, guard, publisher, logger)

	return &fixture{
		dataDir:       dataDir,
		repos:         repos,
		files:         files,
		guard:         guard,
		publisher:     publisher,
		auth:          NewAuthService(repos.StudentRepository, repos.CompanyRepository, auth.NewPasswordHasher(bcrypt.MinCost), jwt, logger),
		students:      NewStudentService(repos.StudentRepository, guard, files, 1<<20, logger),
		companies:     NewCompanyService(repos.CompanyRepository, repos.ApplicationRepository, guard, files, 1<<20, logger),
		applications:  NewApplicationService(repos.ApplicationRepository, repos.StudentRepository, repos.CompanyRepository, notifications, guard, files, 1<<20, logger),
		notifications: notifications,
		advice:        NewAdviceService(repos.AdviceRepository, logger),
	}
}

// student registers a student and returns its principal
func (f *fixture) student(t *testing.T, username string) *appauth.Principal {
	t.Helper()
	resp, err := f.auth.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		Username: username, Password: "pw-" + username, Name: username, University: "UNIZG",
	})
	require.NoError(t, err)
	p, err := f.guard.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	return p
}

// company registers a company and returns its principal
func (f *fixture) company(t *testing.T, username, name string) *appauth.Principal {
	t.Helper()
	resp, err := f.auth.RegisterCompany(context.Background(), &dto.RegisterCompanyRequest{
		Username: username, Password: "pw-" + username, CompanyName: name, Industry: "IT",
	})
	require.NoError(t, err)
	p, err := f.guard.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	return p
}

func (f *fixture) exists(t *testing.T, name string) bool {
	t.Helper()
	ok, err := f.files.Exists(context.Background(), name)
	require.NoError(t, err)
	return ok
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	rc, err := f.files.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func upload(name, content string) *dto.UploadedFile {
	return &dto.UploadedFile{Filename: name, Content: []byte(content)}
}
