package shared

import "errors"

// Error codes shared across bounded contexts
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConcurrency        = "CONCURRENCY_CONFLICT"
	CodeAggregationInput   = "AGGREGATION_INPUT_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInvalidState       = "INVALID_STATE_TRANSITION"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeForbidden          = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Cause is kept for logging and never rendered to clients
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps the original cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewAggregationInputError creates an AGGREGATION_INPUT_ERROR with the given message
func NewAggregationInputError(message string) *DomainError {
	return NewDomainError(CodeAggregationInput, message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrency, "The request conflicted with a concurrent update, please retry")
	ErrAggregationInput    = NewDomainError(CodeAggregationInput, "Report input contains unusable rows")
	ErrStorageUnavailable  = NewDomainError(CodeStorageUnavailable, "Storage is temporarily unavailable")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrDuplicateRequest    = NewDomainError(CodeDuplicateRequest, "This request has already been processed")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// ErrorCode returns the domain error code of err, or an empty string
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
