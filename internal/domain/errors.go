package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrTokenExpired  = errors.New("token expired")
	ErrRateLimited   = errors.New("rate limited")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DenialReason is the machine-readable cause of an authorization denial.
type DenialReason string

const (
	ReasonForbidden            DenialReason = "FORBIDDEN"
	ReasonNoDomainAssigned     DenialReason = "NO_DOMAIN_ASSIGNED"
	ReasonNotAuthenticated     DenialReason = "NOT_AUTHENTICATED"
	ReasonDomainMismatch       DenialReason = "DOMAIN_MISMATCH"
	ReasonSelfValidationDenied DenialReason = "SELF_VALIDATION_DENIED"
)

func (r DenialReason) String() string { return string(r) }

// DenialError is returned when the authorization engine refuses an action.
// It unwraps to ErrUnauthorized for NOT_AUTHENTICATED and to ErrForbidden otherwise.
type DenialError struct {
	Reason DenialReason
}

// Deny builds a DenialError for the given reason.
func Deny(reason DenialReason) *DenialError {
	return &DenialError{Reason: reason}
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

func (e *DenialError) Unwrap() error {
	if e.Reason == ReasonNotAuthenticated {
		return ErrUnauthorized
	}
	return ErrForbidden
}

// RateLimitError reports an exhausted attempt budget and when it resets.
type RateLimitError struct {
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %ds", e.RetryAfterSeconds)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
