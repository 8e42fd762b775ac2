package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrRecipientBound   = errors.New("recipient already verified by another account")
	ErrTransport        = errors.New("code delivery failed")
	ErrNoActiveCode     = errors.New("no active verification code")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrCodeMismatch     = errors.New("verification code mismatch")
	ErrStorage          = errors.New("verification store unavailable")
)

// Stable error codes returned to API clients
const (
	CodeInvalidRecipient = "INVALID_RECIPIENT"
	CodeRecipientBound   = "RECIPIENT_BOUND"
	CodeTransportError   = "TRANSPORT_ERROR"
	CodeNoActiveCode     = "NO_ACTIVE_CODE"
	CodeExpired          = "CODE_EXPIRED"
	CodeMismatch         = "CODE_MISMATCH"
	CodeStorageError     = "STORAGE_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status and a stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, message, nil)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
