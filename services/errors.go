package services

import (
	"errors"
	"fmt"
)

// The error taxonomy the handlers translate to HTTP statuses. Business-rule
// violations and bad input are ValidationError, authorization failures are
// PermissionError, absent records are NotFoundError, and processor failures
// are ExternalServiceError. None of them are retried automatically.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

func NewPermissionError(format string, args ...interface{}) *PermissionError {
	return &PermissionError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ExternalServiceError wraps a failure from the payment processor or another
// remote collaborator. The cause is kept for logs, never shown to clients.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

var (
	// ErrSignatureVerification rejects webhook payloads that fail
	// authenticity checks. Processing always fails closed on it.
	ErrSignatureVerification = errors.New("webhook signature verification failed")

	// ErrRateLimited is returned when an actor exceeds an operation's
	// request budget for the current window.
	ErrRateLimited = errors.New("rate limit exceeded")
)
