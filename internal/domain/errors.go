package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code and message,
// so wrapped sentinels still match with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeEmptySource       = "EMPTY_SOURCE"
	ErrCodeInvalidReference  = "INVALID_REFERENCE"
	ErrCodeDimensionMismatch = "DIMENSION_MISMATCH"
	ErrCodeModelUnavailable  = "MODEL_UNAVAILABLE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrInvalidRole          = NewDomainError(ErrCodeValidation, "invalid chat role")
)

// Ingestion errors
var (
	ErrEmptySource       = NewDomainError(ErrCodeEmptySource, "source produced no content")
	ErrInvalidReference  = NewDomainError(ErrCodeInvalidReference, "invalid source reference")
	ErrDimensionMismatch = NewDomainError(ErrCodeDimensionMismatch, "embedding dimension does not match index")
)

// Model errors
var (
	ErrModelUnavailable = NewDomainError(ErrCodeModelUnavailable, "model capability unavailable")
)

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err carries a DomainError with the given code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// ModelUnavailable wraps a failed embedding or completion call.
func ModelUnavailable(capability string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeModelUnavailable, capability+" unavailable", err)
}

// DimensionMismatch reports a vector whose length differs from the index dimension.
func DimensionMismatch(want, got int) *DomainError {
	return NewDomainError(ErrCodeDimensionMismatch, fmt.Sprintf("expected dimension %d, got %d", want, got))
}

// InvalidReference reports a malformed source identifier.
func InvalidReference(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidReference, message)
}

// EmptySource reports a source that yielded no pages or chunks.
func EmptySource(message string) *DomainError {
	return NewDomainError(ErrCodeEmptySource, message)
}
