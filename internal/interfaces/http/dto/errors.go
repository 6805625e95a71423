package dto

import (
	"net/http"

	"github.com/smbc/backend/internal/domain/shared"
)

// Transport-only error codes. Domain codes come from the shared package.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeTokenExpired  = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "TOKEN_INVALID"
	ErrCodeBodyTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Domain errors
	shared.CodeValidation:         http.StatusBadRequest,
	shared.CodeNotFound:           http.StatusNotFound,
	shared.CodeConcurrency:        http.StatusConflict,
	shared.CodeDuplicateRequest:   http.StatusConflict,
	shared.CodeAggregationInput:   http.StatusUnprocessableEntity,
	shared.CodeInvalidState:       http.StatusUnprocessableEntity,
	shared.CodeStorageUnavailable: http.StatusServiceUnavailable,
	shared.CodeForbidden:          http.StatusForbidden,

	// Transport errors
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeTokenInvalid:  http.StatusUnauthorized,
	ErrCodeBodyTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeRouteNotFound: http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
