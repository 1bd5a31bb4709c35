// Package errors defines the error taxonomy the use cases speak. Every failure
// a handler can surface maps onto one of these values, which carry their HTTP
// status and a machine-readable code.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is the contract between the use cases and the delivery layer.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

var (
	// ErrInvalidArgument covers malformed or out-of-range input, caught before any I/O.
	ErrInvalidArgument = newBase(http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = newBase(http.StatusNotFound, "NOT_FOUND", "resource not found")

	// ErrConflict covers uniqueness and claim-ownership violations.
	ErrConflict = newBase(http.StatusConflict, "CONFLICT", "resource conflict")

	// ErrWeakPassword is raised when the identity provider rejects a password
	// that does not meet the configured strength requirements.
	ErrWeakPassword = newBase(http.StatusBadRequest, "WEAK_PASSWORD", "password does not meet security requirements")

	// ErrDuplicateEmail is raised when the identity provider already holds an
	// active credential for the supplied email.
	ErrDuplicateEmail = newBase(http.StatusConflict, "DUPLICATE_EMAIL", "email is already registered")

	// ErrIdentityProvider is raised for any identity-provider failure that is
	// not one of the recognized structured codes. It is always re-raised,
	// never swallowed.
	ErrIdentityProvider = newBase(http.StatusBadGateway, "IDENTITY_PROVIDER", "identity provider request failed")

	// ErrCookieMismatch is raised when an address cookie and an email cookie
	// resolve to unrelated records.
	ErrCookieMismatch = newBase(http.StatusBadRequest, "COOKIE_MISMATCH", "cookie mismatch")

	// ErrTransactionFailed wraps a failed multi-step database transaction.
	ErrTransactionFailed = newBase(http.StatusInternalServerError, "TRANSACTION_FAILED", "database transaction failed")

	// ErrInternalError is the catch-all for unexpected failures.
	ErrInternalError = newBase(http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
)

// BaseError implements AppError for the predefined values above. The values
// are package-level sentinels, so errors.Is works across WrapMessage chains.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func newBase(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string { return e.message }

// WrapMessage annotates the sentinel with call-site context. The result still
// matches the sentinel under errors.Is.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithDetails derives a copy carrying detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	derived := *e
	derived.details = details

	return &derived
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// DatabaseExecuteError reports a storage-level failure that is not a
// constraint violation. The wrapped cause stays available for logging; the
// client only ever sees the generic message.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError wraps a database failure.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error { return e.err }

func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
