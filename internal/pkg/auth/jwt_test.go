package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
)

func newTestJWT() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "careerhub-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWT()

	token, expiresAt, err := svc.Issue("ana", "student")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "careerhub-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWT()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.Issue("ana", "student")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, _, err := newTestJWT().Issue("ana", "student")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "another-secret", AccessTokenExp: time.Hour})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_Tampered(t *testing.T) {
	svc := newTestJWT()
	token, _, err := svc.Issue("ana", "student")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, _, err := svc.Issue("mallory", "company")
	require.NoError(t, err)
	// payload of one token with the signature of another
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWT()
	claims := &Claims{
		Username: "ana",
		Role:     "student",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Validate(none)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Validate(hs512)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := newTestJWT()

	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, tok)
	}
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("abc"))
	assert.Equal(t, "", ExtractBearerToken(""))
}
