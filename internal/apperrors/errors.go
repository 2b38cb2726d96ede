package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates an operation that is illegal for the current
// status of the resource, such as reversing an entry that is not posted.
var ErrInvalidState = errors.New("invalid state transition")

// ErrIntegrity indicates the store rejected a write because it would break
// referential or uniqueness integrity.
var ErrIntegrity = errors.New("integrity violation")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// It is a specialisation of ErrIntegrity, so errors.Is(err, ErrIntegrity) also holds.
var ErrDuplicate = fmt.Errorf("resource already exists: %w", ErrIntegrity)

// ErrConflict indicates a request conflicting with existing data that is not a store-level violation.
var ErrConflict = errors.New("conflict")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// AppError carries an HTTP-ish status code and a user-facing message along
// with the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. A nil cause is replaced with ErrInternal so
// callers can still match on it.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}
