package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request collides with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrConnectivity indicates that the persistence layer could not be reached or failed.
var ErrConnectivity = errors.New("persistence unavailable")

// ErrForbidden indicates that the caller may not act on the requested hotel.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-ish status code, a message safe to show to the caller,
// and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. 5xx codes are classified as connectivity failures
// so callers can offer a retry.
func NewAppError(code int, message string, err error) *AppError {
	if code >= http.StatusInternalServerError && err != nil && !errors.Is(err, ErrConnectivity) {
		err = fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError returns an AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewConnectivityError returns an AppError wrapping ErrConnectivity and the driver error.
func NewConnectivityError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, err)
}
