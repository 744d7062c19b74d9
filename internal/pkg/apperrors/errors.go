package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so callers can branch on the
// kind with errors.Is while still matching the specific sentinel.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = fmt.Errorf("%w: resource not found", ErrInvalidArgument)
	ErrConflict         = fmt.Errorf("%w: conflict", ErrInvalidState)

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = fmt.Errorf("%w: validation failed", ErrInvalidArgument)
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrIdentifierExists   = fmt.Errorf("%w: identification already exists", ErrConflict)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrInvalidArgument)
)

// Class errors
var (
	ErrClassNotFound         = fmt.Errorf("%w: class not found", ErrResourceNotFound)
	ErrUnsupportedRepetition = fmt.Errorf("%w: unsupported repetition", ErrInvalidArgument)
	ErrInvalidSchedule       = fmt.Errorf("%w: invalid schedule", ErrInvalidArgument)
)

// Enrollment and attendance errors
var (
	ErrEnrollmentNotFound = fmt.Errorf("%w: enrollment not found", ErrResourceNotFound)
	ErrNotEnrolled        = fmt.Errorf("%w: not enrolled", ErrInvalidArgument)
	ErrAlreadyEnrolled    = fmt.Errorf("%w: already enrolled", ErrConflict)
	ErrCapacityReached    = fmt.Errorf("%w: class capacity reached", ErrConflict)
	ErrAlreadyConfirmed   = fmt.Errorf("%w: attendance already confirmed", ErrConflict)
	ErrNoAttendance       = fmt.Errorf("%w: no attendance on record", ErrInvalidState)
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// Is returns whether target matches any of the errors in errList
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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
