package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeTimeout is used when a request ran out of time
	ErrCodeTimeout = "ERR_TIMEOUT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidTenant is used when the tenant header is not a UUID
	ErrCodeInvalidTenant = "ERR_INVALID_TENANT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Report error codes
const (
	// ErrCodeSourceUnavailable is used when a ledger the report needs could not be read
	ErrCodeSourceUnavailable = "ERR_SOURCE_UNAVAILABLE"
	// ErrCodePartialInventoryFailure is used when the strict policy rejects a failed inventory category
	ErrCodePartialInventoryFailure = "ERR_PARTIAL_INVENTORY_FAILURE"
	// ErrCodeExportUnavailable is used when PDF export is not configured on this instance
	ErrCodeExportUnavailable = "ERR_EXPORT_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeTimeout:  http.StatusGatewayTimeout,

	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidTenant: http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	// Upstream ledgers are down, the client may retry
	ErrCodeSourceUnavailable:       http.StatusServiceUnavailable,
	ErrCodePartialInventoryFailure: http.StatusServiceUnavailable,
	ErrCodeExportUnavailable:       http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                 ErrCodeNotFound,
	"INVALID_INPUT":             ErrCodeInvalidInput,
	"BAD_REQUEST":               ErrCodeBadRequest,
	"INTERNAL_ERROR":            ErrCodeInternal,
	"SOURCE_UNAVAILABLE":        ErrCodeSourceUnavailable,
	"PARTIAL_INVENTORY_FAILURE": ErrCodePartialInventoryFailure,
	"EXPORT_UNAVAILABLE":        ErrCodeExportUnavailable,
	"RENDER_TIMEOUT":            ErrCodeTimeout,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
