package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAuthRequired       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Student errors
var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrStudentNumberExists     = errors.New("student number already in use")
	ErrInvalidStatusTransition = errors.New("invalid enrollment status transition")
)

// Catalog errors
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseCodeExists  = errors.New("course with this code already exists")
	ErrCourseHasSubjects     = errors.New("course has subjects and cannot be deleted")
	ErrCourseHasStudents     = errors.New("course has enrolled students and cannot be deleted")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrSubjectCodeExists     = errors.New("subject with this code already exists")
	ErrSubjectHasEnrollments = errors.New("subject has enrollments and cannot be deleted")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a field-level message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}
