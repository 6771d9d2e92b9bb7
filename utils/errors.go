package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the core services. Controllers map these to HTTP
// status codes via StatusForError; anything outside the taxonomy is a 500.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// StateError marks an operation that is invalid for the entity's current
// lifecycle state (closing a table that is not open, modifying an archived bill).
type StateError struct{ Message string }

func (e *StateError) Error() string { return e.Message }

type UnavailableError struct{ Message string }

func (e *UnavailableError) Error() string { return e.Message }

type EmptyQueueError struct{ Message string }

func (e *EmptyQueueError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NewStateError(format string, args ...interface{}) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

func NewUnavailableError(format string, args ...interface{}) error {
	return &UnavailableError{Message: fmt.Sprintf(format, args...)}
}

func NewEmptyQueueError(format string, args ...interface{}) error {
	return &EmptyQueueError{Message: fmt.Sprintf(format, args...)}
}

// StatusForError returns the HTTP status for a service error.
func StatusForError(err error) int {
	var (
		validationErr  *ValidationError
		notFoundErr    *NotFoundError
		conflictErr    *ConflictError
		stateErr       *StateError
		unavailableErr *UnavailableError
		emptyQueueErr  *EmptyQueueError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.As(err, &unavailableErr):
		return http.StatusConflict
	case errors.As(err, &emptyQueueErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
