package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/app/repositories"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/auth"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIError_MapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrUsernameTaken, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewUnauthorizedError("who"), http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{apperrors.NewInvalidInputError("bad"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewUpstreamError("llm", errors.New("boom")), http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestHandleAPIError_IncludesUserMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleAPIError(c, apperrors.ErrJobNotFound)
	assert.Contains(t, w.Body.String(), "job not found")
}

type authFixture struct {
	router *gin.Engine
	jwt    *auth.JWTService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	backend, err := recordstore.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	repos := repositories.NewRepositories(recordstore.New(backend))
	ctx := context.Background()
	require.NoError(t, repos.StudentRepository.Create(ctx, models.NewStudent("ana", "Ana", "FER", "hash")))
	require.NoError(t, repos.CompanyRepository.Create(ctx, models.NewCompany("acme", "Acme", "IT", "hash")))

	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour})
	m := NewAuthMiddleware(appauth.NewGuard(jwt, repos.StudentRepository, repos.CompanyRepository))

	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		username, _ := CurrentUsername(c)
		c.String(http.StatusOK, username)
	})
	router.GET("/company", m.JWTAuth(), m.RoleRequired(models.RoleCompany), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return &authFixture{router: router, jwt: jwt}
}

func (f *authFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	f := newAuthFixture(t)
	studentToken, _, err := f.jwt.Issue("ana", "student")
	require.NoError(t, err)
	companyToken, _, err := f.jwt.Issue("acme", "company")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	w := f.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana", w.Body.String())

	w = f.do(httptest.NewRequest(http.MethodGet, "/me?token="+studentToken, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Error.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = f.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Error.Code)

	req = httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, f.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Authorization", "Bearer "+companyToken)
	assert.Equal(t, http.StatusNoContent, f.do(req).Code)
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("ip", 2, time.Minute))
	assert.True(t, limiter.Allow("ip", 2, time.Minute))
	assert.False(t, limiter.Allow("ip", 2, time.Minute))
	assert.True(t, limiter.Allow("other", 2, time.Minute))

	now = now.Add(61 * time.Second)
	assert.True(t, limiter.Allow("ip", 2, time.Minute))
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	limiter := NewRedisLimiter(client)
	assert.True(t, limiter.Allow("ip", 1, time.Minute))
	assert.True(t, limiter.Allow("ip", 1, time.Minute))

	var nilLimiter *RedisLimiter
	assert.True(t, nilLimiter.Allow("ip", 1, time.Minute))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.POST("/chat", RateLimit(NewMemoryLimiter(), 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrorCodeTooManyRequests, decodeError(t, w).Error.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.EqualValues(t, 200, line["status"])
}
