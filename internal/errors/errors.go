package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeDayNotFound          = "DAY_NOT_FOUND"
	ErrCodeLessonNotFound       = "LESSON_NOT_FOUND"
	ErrCodeSessionNotFound      = "SESSION_NOT_FOUND"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeTransitionInProgress = "TRANSITION_IN_PROGRESS"
	ErrCodeMalformedResponse    = "MALFORMED_RESPONSE"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrDayNotFound          = &AppError{Code: ErrCodeDayNotFound}
	ErrLessonNotFound       = &AppError{Code: ErrCodeLessonNotFound}
	ErrSessionNotFound      = &AppError{Code: ErrCodeSessionNotFound}
	ErrInvalidTransition    = &AppError{Code: ErrCodeInvalidTransition}
	ErrTransitionInProgress = &AppError{Code: ErrCodeTransitionInProgress}
	ErrMalformedResponse    = &AppError{Code: ErrCodeMalformedResponse}
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "DAY_NOT_FOUND")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

func NewDayNotFoundError(day int) *AppError {
	return &AppError{
		Code:    ErrCodeDayNotFound,
		Message: fmt.Sprintf("day %d does not exist", day),
		Status:  404,
	}
}

func NewLessonNotFoundError(day, lesson int) *AppError {
	return &AppError{
		Code:    ErrCodeLessonNotFound,
		Message: fmt.Sprintf("lesson %d does not exist on day %d", lesson, day),
		Status:  404,
	}
}

func NewSessionNotFoundError(id string) *AppError {
	return &AppError{
		Code:    ErrCodeSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", id),
		Status:  404,
	}
}

// NewInvalidTransitionError reports a state machine call made out of sequence.
func NewInvalidTransitionError(op, state string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("%s is not allowed in state %s", op, state),
		Status:  409,
	}
}

// NewTransitionInProgressError reports a re-entrant call into a session.
func NewTransitionInProgressError(op string) *AppError {
	return &AppError{
		Code:    ErrCodeTransitionInProgress,
		Message: fmt.Sprintf("%s rejected: another transition is in progress", op),
		Status:  409,
	}
}

// NewMalformedResponseError reports a response whose shape does not match the task.
func NewMalformedResponseError(kind string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedResponse,
		Message: fmt.Sprintf("response does not fit a %s task", kind),
		Status:  400,
		Err:     err,
	}
}
