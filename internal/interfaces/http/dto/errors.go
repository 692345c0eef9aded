package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
)

// Scoring error codes
const (
	// ErrCodeUnknownCategory is used when a category label was never seen
	// during training and therefore has no defined code
	ErrCodeUnknownCategory = "ERR_UNKNOWN_CATEGORY"
	// ErrCodeSchemaMismatch is used when input columns do not satisfy the
	// artifact's frozen schema
	ErrCodeSchemaMismatch = "ERR_SCHEMA_MISMATCH"
	// ErrCodeInvalidInput is used when a record fails domain validation
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeArtifactCorrupt is used when the model artifact cannot be used
	ErrCodeArtifactCorrupt = "ERR_ARTIFACT_CORRUPT"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeInvalidJSON:        http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,

	// Scoring errors -> 422 Unprocessable Entity
	ErrCodeUnknownCategory: http.StatusUnprocessableEntity,
	ErrCodeSchemaMismatch:  http.StatusUnprocessableEntity,
	ErrCodeInvalidInput:    http.StatusBadRequest,

	// Artifact errors -> 503 Service Unavailable, the model can be reloaded
	ErrCodeArtifactCorrupt: http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps a domain error code onto the wire format.
// Domain errors carry bare codes like UNKNOWN_CATEGORY.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
