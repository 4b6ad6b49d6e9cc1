// Package errors defines the error taxonomy surfaced to API clients. Each error carries
// the HTTP status and stable code it is rendered with.
package errors

import (
	"net/http"

	"taskboard/internal/errors"
)

// AppError is implemented by every error that maps to a client-facing response.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string // Optional; dropped from 5xx responses.
}

// BaseError is a sentinel AppError. Wrap it with WrapMessage and match it with errors.Is.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

func newError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return "" }

// WrapMessage adds internal context and a stack; clients still only see Message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

var (
	ErrUserNotFound       = newError(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrUserCreationFailed = newError(http.StatusInternalServerError, "USER_CREATION_FAILED", "Failed to create user")
	ErrUserUpdateFailed   = newError(http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user")
	// Duplicates are a client error: 400, not 409.
	ErrUserAlreadyExists = newError(http.StatusBadRequest, "USER_ALREADY_EXISTS", "Username or email already exists")

	ErrTaskNotFound       = newError(http.StatusNotFound, "TASK_NOT_FOUND", "Task not found")
	ErrTaskCreationFailed = newError(http.StatusInternalServerError, "TASK_CREATION_FAILED", "Failed to create task")
	ErrTaskUpdateFailed   = newError(http.StatusInternalServerError, "TASK_UPDATE_FAILED", "Failed to update task")

	// Wrong password and unknown email share this error.
	ErrInvalidCredentials = newError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	ErrPasswordRequired   = newError(http.StatusBadRequest, "PASSWORD_REQUIRED", "A valid password is required")
	ErrPasswordTooLong    = newError(http.StatusBadRequest, "PASSWORD_TOO_LONG", "Password exceeds the maximum supported length")
	ErrPasswordHashFailed = newError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Failed to process password")

	ErrValidationFailed = newError(http.StatusBadRequest, "VALIDATION_FAILED", "Input validation failed")
	ErrInternalError    = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
)

// DatabaseExecuteError wraps a driver failure. The driver error stays reachable through Unwrap
// but never reaches the client.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return "database execution failed: " + e.details + ": " + e.err.Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
