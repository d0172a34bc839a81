// Package errors defines the application-level error taxonomy.
// Every public operation normalizes internal failures into one of these
// values; handlers render Message() verbatim to the end user.
package errors

import (
	"net/http"

	"vitrine/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Token validation errors. Messages are end-user-legible; the UI shows
	// them inline next to the download button.
	ErrMalformedToken = NewBaseError(
		http.StatusBadRequest,
		"MALFORMED_TOKEN",
		"Invalid token format",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusGone,
		"TOKEN_EXPIRED",
		"This download link has expired. Please request a new one from your order page.",
		"",
	)

	ErrOwnershipMismatch = NewBaseError(
		http.StatusForbidden,
		"OWNERSHIP_MISMATCH",
		"This download link is not authorized for your account.",
		"",
	)

	ErrSessionMismatch = NewBaseError(
		http.StatusForbidden,
		"SESSION_MISMATCH",
		"This download link was issued for a different session. Please sign in again and retry.",
		"",
	)

	ErrSignatureMismatch = NewBaseError(
		http.StatusForbidden,
		"SIGNATURE_MISMATCH",
		"This download link failed its integrity check and cannot be used.",
		"",
	)

	// Session errors
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"You must be signed in to download your files.",
		"",
	)

	// Storage errors
	ErrAuthorizationDenied = NewBaseError(
		http.StatusBadGateway,
		"STORAGE_ACCESS_DENIED",
		"The file store denied access. The order-files bucket likely needs read permission for the service account.",
		"",
	)

	ErrFetchFailed = NewBaseError(
		http.StatusBadGateway,
		"FETCH_FAILED",
		"The file could not be fetched from storage. Please try again.",
		"",
	)

	// Order gating errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"We could not find that order.",
		"",
	)

	ErrOrderNotReady = NewBaseError(
		http.StatusConflict,
		"ORDER_NOT_READY",
		"This order is not completed yet. Files become available once payment is confirmed.",
		"",
	)

	ErrOrderOwnership = NewBaseError(
		http.StatusForbidden,
		"ORDER_OWNERSHIP",
		"This order belongs to a different account.",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_TRANSITION",
		"Order status can only move forward: pending, paid, completed.",
		"",
	)

	ErrFileNotInOrder = NewBaseError(
		http.StatusNotFound,
		"FILE_NOT_IN_ORDER",
		"That file is not part of this order.",
		"",
	)

	// Handle errors
	ErrHandleGone = NewBaseError(
		http.StatusGone,
		"HANDLE_GONE",
		"This download reference has expired. Please start the download again.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"The request input failed validation.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong on our side. Please try again.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "A database error occurred. Please try again."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
