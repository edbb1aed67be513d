// Package errors defines the application error taxonomy surfaced to callers.
package errors

import (
	"net/http"

	"helios/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. These are the only error kinds the account service
// surfaces; everything infrastructure-shaped collapses into ErrStorageFailure.
var (
	// ErrAccountNotFound is returned when a looked-up account does not exist.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"account not found",
		"",
	)

	// ErrUsernameTaken is returned when the requested username is already in use.
	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"username already exists",
		"",
	)

	// ErrEmailTaken is returned when the requested email is already in use.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"email already exists",
		"",
	)

	// ErrValidationFailed is returned when client-supplied data violates
	// shape or business rules, including privilege-escalation attempts.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"validation failed",
		"",
	)

	// ErrStorageFailure is returned for infrastructure errors talking to the
	// store. The underlying cause is logged, never exposed to the caller.
	ErrStorageFailure = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_FAILURE",
		"storage failure",
		"",
	)
)

// NewStorageError wraps a low-level database error into the opaque storage
// failure kind while preserving the cause for logging.
func NewStorageError(cause error, message string) error {
	if cause == nil {
		return ErrStorageFailure.WrapMessage(message)
	}

	return errors.Wrap(errors.Wrap(ErrStorageFailure, cause.Error()), message)
}
