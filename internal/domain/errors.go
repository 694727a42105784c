package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors below wrap these so callers can branch with
// errors.Is without knowing the concrete type.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("consistency error")
)

// Authentication errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// ValidationError reports malformed or rejected input.
type ValidationError struct {
	Entity string
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s: invalid %s: %s", e.Entity, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError with entity and field context.
func NewValidationError(entity, id, field, reason string) error {
	return &ValidationError{Entity: entity, ID: id, Field: field, Reason: reason}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConsistencyError reports an operation that would corrupt ledger state,
// such as synthesizing a second adjustment for a currency that already has
// an undeleted one.
type ConsistencyError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

// NewConsistencyError builds a ConsistencyError.
func NewConsistencyError(entity, id, reason string) error {
	return &ConsistencyError{Entity: entity, ID: id, Reason: reason}
}
