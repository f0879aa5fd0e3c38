package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenMissing       = errors.New("authentication token missing")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Principal errors
var (
	ErrPrincipalNotFound  = NewCustomError(ErrResourceNotFound, "User not found")
	ErrEmailAlreadyExists = NewCustomError(ErrConflict, "Email already exists")
	ErrInvalidRole        = NewCustomError(ErrValidationFailed, "Invalid role")
)

// Learning content errors
var (
	ErrCourseNotFound     = NewCustomError(ErrResourceNotFound, "Course not found")
	ErrModuleNotFound     = NewCustomError(ErrResourceNotFound, "Module not found")
	ErrLessonNotFound     = NewCustomError(ErrResourceNotFound, "Lesson not found")
	ErrQuizNotFound       = NewCustomError(ErrResourceNotFound, "Quiz not found")
	ErrAssignmentNotFound = NewCustomError(ErrResourceNotFound, "Assignment not found")
	ErrSubmissionNotFound = NewCustomError(ErrResourceNotFound, "Submission not found")
)

// Student activity errors
var (
	ErrAlreadySubmitted = NewCustomError(ErrConflict, "Assignment already submitted")
	ErrDuplicateAttempt = NewCustomError(ErrConflict, "Quiz attempt already recorded")
	ErrAlreadyEnrolled  = NewCustomError(ErrConflict, "Already enrolled in this course")
	ErrNotParticipant   = NewCustomError(ErrPermissionDenied, "Not a participant of this course")
	ErrNotOwner         = NewCustomError(ErrPermissionDenied, "You do not own this resource")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewUnauthenticatedError creates a new custom error for a missing or rejected credential
func NewUnauthenticatedError(message string, cause error) error {
	err := &CustomError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
	if cause != nil {
		err.Cause = cause
	}
	return err
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	// Cause is the lower-level failure, reported in the error detail
	Cause error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// UserMessage returns the message intended for API consumers, if any
func UserMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
