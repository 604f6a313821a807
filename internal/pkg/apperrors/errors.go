package apperrors

import "errors"

// Error kinds. Every failure surfaced by a service wraps exactly one of these.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
	ErrForbidden       = errors.New("permission denied")
	ErrUnauthorized    = errors.New("authentication required")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUpstreamFailure = errors.New("upstream service failure")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Entity errors
var (
	ErrStudentNotFound     = NewCustomError(ErrNotFound, "student not found")
	ErrCompanyNotFound     = NewCustomError(ErrNotFound, "company not found")
	ErrJobNotFound         = NewCustomError(ErrNotFound, "job not found")
	ErrEventNotFound       = NewCustomError(ErrNotFound, "event not found")
	ErrApplicationNotFound = NewCustomError(ErrNotFound, "application not found")
	ErrPostNotFound        = NewCustomError(ErrNotFound, "advice post not found")
	ErrFileNotFound        = NewCustomError(ErrNotFound, "file not found")
	ErrUsernameTaken       = NewCustomError(ErrConflict, "username already exists")
)

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return NewCustomError(ErrNotFound, message)
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return NewCustomError(ErrForbidden, message)
}

// NewUnauthorizedError creates an authentication error with a message
func NewUnauthorizedError(message string) error {
	return NewCustomError(ErrUnauthorized, message)
}

// NewInvalidInputError creates a validation error with a message
func NewInvalidInputError(message string) error {
	return NewCustomError(ErrInvalidInput, message)
}

// NewUpstreamError creates an upstream failure wrapping the provider error
func NewUpstreamError(message string, cause error) error {
	return &CustomError{Err: ErrUpstreamFailure, Message: message, Cause: cause}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError attaches a user-facing message to an error kind
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "unknown error"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As
func (e *CustomError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewCustomError creates a CustomError with underlying error kind
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// UserMessage returns the message meant for API clients
func UserMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return ""
}
