package services

import (
	"fmt"
	"strings"

	"catalog/internal/validation"
)

// ValidationError reports malformed or out of bounds input. It is returned
// before anything is written.
type ValidationError struct {
	Errors []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			msgs = append(msgs, fe.Message)
			continue
		}
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// ConflictError reports a duplicate name or a redundant state transition.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InvariantViolationError reports an operation that would break a rule
// spanning entities, such as deleting a category that still has products.
type InvariantViolationError struct {
	Message string
}

func (e *InvariantViolationError) Error() string {
	return e.Message
}

// Reasons carried by AuthError.
const (
	AuthMissingCredential = "missing credential"
	AuthExpired           = "expired"
	AuthInvalid           = "invalid"
)

// AuthError reports a missing, expired or otherwise invalid bearer token.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return "authentication failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func invalid(errs []validation.FieldError) error {
	return &ValidationError{Errors: errs}
}
