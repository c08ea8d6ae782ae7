package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user lacks permission for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates that the operation conflicts with the current state of the
// resource, e.g. a stale version on an optimistic concurrency check.
var ErrConflict = errors.New("conflict with current resource state")

// ErrPersistence indicates a transient storage failure. Nothing was committed, so
// the caller may safely retry the whole operation.
var ErrPersistence = errors.New("persistence failure")

// ErrConsistency indicates that the balance invariant may have been violated and a
// compensating rollback could not restore it. It must never be silently swallowed:
// the affected account needs reconciliation before its balance can be trusted.
var ErrConsistency = errors.New("consistency failure, reconciliation required")

// ErrInternal indicates an unexpected internal error.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-like status code alongside a message and wrapped cause.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
