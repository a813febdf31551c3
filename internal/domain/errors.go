package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by stores, services and the HTTP layer.
var (
	// ErrNotFound is returned when a referenced speaker or session does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrIllegalTransition is returned when a review status change is not allowed.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrSpeakerNotAttached is returned when detaching a speaker that is not on the session.
	ErrSpeakerNotAttached = errors.New("speaker is not attached to the session")
	// ErrDuplicateEmail is returned when another speaker already uses the email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrForbidden is returned when the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports the field that failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// transitionError wraps ErrIllegalTransition with the offending states.
func transitionError(from SessionStatus, op string) error {
	return fmt.Errorf("%w: cannot %s a session that is %s", ErrIllegalTransition, op, from)
}
