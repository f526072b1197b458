package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidTenant, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeSourceUnavailable, http.StatusServiceUnavailable},
		{ErrCodePartialInventoryFailure, http.StatusServiceUnavailable},
		{ErrCodeExportUnavailable, http.StatusServiceUnavailable},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"SOURCE_UNAVAILABLE", ErrCodeSourceUnavailable},
		{"PARTIAL_INVENTORY_FAILURE", ErrCodePartialInventoryFailure},
		{"INTERNAL_ERROR", ErrCodeInternal},
		{"EXPORT_UNAVAILABLE", ErrCodeExportUnavailable},
		{"RENDER_TIMEOUT", ErrCodeTimeout},
		// Already normalized or unknown codes pass through
		{ErrCodeTimeout, ErrCodeTimeout},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryMappedCodeHasStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "no HTTP status for %s (from %s)", apiCode, domainCode)
	}
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		body, err := json.Marshal(NewSuccessResponse(map[string]int{"coverage_ratio": 150}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"coverage_ratio":150}}`, string(body))
	})

	t.Run("error omits data and empty request id", func(t *testing.T) {
		body, err := json.Marshal(NewErrorResponse(ErrCodeSourceUnavailable, "treasury accounts unavailable"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_SOURCE_UNAVAILABLE","message":"treasury accounts unavailable"}}`, string(body))
	})

	t.Run("error with request id", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-42")
		require.NotNil(t, resp.Error)
		assert.False(t, resp.Success)
		assert.Equal(t, "req-42", resp.Error.RequestID)
	})
}
