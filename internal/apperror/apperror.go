package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. HTTP handlers map these to status
// codes; nothing below the controllers knows about HTTP.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnconfigured    = errors.New("unconfigured")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // human-readable message returned to the client
	Field   string // optional: field that failed validation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func InvalidInput(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unconfigured signals a required external dependency has no credentials.
// Surfaced to clients as a generic 500.
func Unconfigured(dependency string) *AppError {
	return &AppError{
		Err:     ErrUnconfigured,
		Message: fmt.Sprintf("%s is not configured", dependency),
	}
}
