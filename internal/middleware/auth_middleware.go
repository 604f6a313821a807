package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/unizg/careerhub/internal/app/auth"
	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/app/models/dto"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	"github.com/unizg/careerhub/internal/pkg/auth"
)

const principalKey = "principal"

// AuthMiddleware resolves bearer tokens into principals
type AuthMiddleware struct {
	guard *appauth.Guard
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(guard *appauth.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// tokenFrom reads the Authorization header, falling back to the token query
// parameter used by browser websocket clients and Swagger UI.
func tokenFrom(c *gin.Context) string {
	if token := auth.ExtractBearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	return c.Query("token")
}

// JWTAuth rejects the request unless it carries a valid token for an existing account
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.guard.Authenticate(c.Request.Context(), tokenFrom(c))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RoleRequired must run after JWTAuth
func (m *AuthMiddleware) RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := CurrentPrincipal(c)
		if err := m.guard.Authorize(principal, role); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by JWTAuth
func CurrentPrincipal(c *gin.Context) (*appauth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*appauth.Principal)
	return principal, ok && principal != nil
}

// CurrentUsername adapts CurrentPrincipal for the websocket handler
func CurrentUsername(c *gin.Context) (string, bool) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return "", false
	}
	return principal.Username, true
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrorCodeUnauthorized
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		code = dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		code = dto.ErrorCodeInvalidToken
	}
	detail := dto.NewErrorDetail(code, "Authentication required").WithDetails(apperrors.UserMessage(err))
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
