package auth

import (
	"context"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/apperrors"
	pkgauth "github.com/unizg/careerhub/internal/pkg/auth"
)

// Principal is the authenticated caller
type Principal struct {
	Username string
	Role     models.Role
	Student  *models.StudentProfile
	Company  *models.CompanyProfile
}

// TokenValidator validates access tokens
type TokenValidator interface {
	Validate(token string) (*pkgauth.Claims, error)
}

// StudentFinder looks students up by username
type StudentFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.Student, error)
}

// CompanyFinder looks companies up by username
type CompanyFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.Company, error)
}

// Guard resolves tokens to principals and enforces role and ownership
type Guard struct {
	tokens    TokenValidator
	students  StudentFinder
	companies CompanyFinder
}

// NewGuard creates a new Guard
func NewGuard(tokens TokenValidator, students StudentFinder, companies CompanyFinder) *Guard {
	return &Guard{
		tokens:    tokens,
		students:  students,
		companies: companies,
	}
}

// Authenticate resolves token to a principal. Every failure is Unauthorized,
// including tokens whose user no longer exists.
func (g *Guard) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		message := "invalid token"
		if apperrors.Is(err, apperrors.ErrTokenExpired) {
			message = "token has expired"
		}
		return nil, &apperrors.CustomError{Err: apperrors.ErrUnauthorized, Message: message, Cause: err}
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	principal := &Principal{Username: claims.Username, Role: role}
	switch role {
	case models.RoleStudent:
		s, err := g.students.GetByUsername(ctx, claims.Username)
		if err != nil {
			return nil, resolveError(err)
		}
		principal.Student = s.Public()
	case models.RoleCompany:
		c, err := g.companies.GetByUsername(ctx, claims.Username)
		if err != nil {
			return nil, resolveError(err)
		}
		principal.Company = c.Public()
	}
	return principal, nil
}

func resolveError(err error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewUnauthorizedError("account no longer exists")
	}
	return err
}

// Authorize fails with Forbidden when the principal lacks role
func (g *Guard) Authorize(p *Principal, role models.Role) error {
	if p == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	if p.Role != role {
		return apperrors.NewForbiddenError("this action requires a " + role.String() + " account")
	}
	return nil
}

// AuthorizeOwner fails with Forbidden unless the principal owns the resource
func (g *Guard) AuthorizeOwner(p *Principal, username string) error {
	if p == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	if p.Username != username {
		return apperrors.NewForbiddenError("you can only access your own resources")
	}
	return nil
}

// AuthorizeStudentOwner combines the student role check with ownership
func (g *Guard) AuthorizeStudentOwner(p *Principal, username string) error {
	if err := g.Authorize(p, models.RoleStudent); err != nil {
		return err
	}
	return g.AuthorizeOwner(p, username)
}
