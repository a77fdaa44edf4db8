package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrUpstream           = errors.New("upstream service unavailable")
	ErrUnknownRole        = errors.New("unknown role")
)

// Error codes returned to API clients
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeConflict            = "CONFLICT"
	CodeSlotUnavailable     = "SLOT_UNAVAILABLE"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeRequestInProgress   = "REQUEST_IN_PROGRESS"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeForbidden           = "FORBIDDEN"
	CodeLifecycleGated      = "LIFECYCLE_GATED"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstream            = "UPSTREAM_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation returns a 400 carrying per-field messages.
func Validation(message string, fields map[string]string) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
	if len(fields) > 0 {
		e.Fields = fields
	}
	return e
}

// FieldError is a Validation error for a single field.
func FieldError(field, message string) *AppError {
	return Validation(message, map[string]string{field: message})
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

// ConflictWithCode is a 409 with a more specific client code such as SLOT_UNAVAILABLE.
func ConflictWithCode(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, ErrConflict)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

// Upstream wraps a failure of an external collaborator. The client sees a generic retryable message.
func Upstream(err error) *AppError {
	if err == nil {
		err = ErrUpstream
	}
	return NewAppError(http.StatusServiceUnavailable, CodeUpstream, "service temporarily unavailable, please retry", errors.Join(ErrUpstream, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidInput,
		Message: message,
		Err:     err,
	}
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
