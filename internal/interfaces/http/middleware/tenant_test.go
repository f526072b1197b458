package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/infrastructure/logger"
	"github.com/mfgerp/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefaultTenant = "00000000-0000-0000-0000-000000000001"

func serveTenant(t *testing.T, cfg TenantConfig, path, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	router := gin.New()
	router.Use(RequestID(), TenantMiddlewareWithConfig(cfg))

	var captured string
	handler := func(c *gin.Context) {
		captured = GetTenantID(c)
		c.Status(http.StatusOK)
	}
	router.GET("/test", handler)
	router.GET("/health", handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(TenantHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, captured
}

func TestTenantMiddleware_Resolution(t *testing.T) {
	tenant := uuid.New().String()

	tests := []struct {
		name           string
		defaultTenant  string
		header         string
		expectedStatus int
		expectedID     string
	}{
		{"header wins over default", testDefaultTenant, tenant, http.StatusOK, tenant},
		{"default used without header", testDefaultTenant, "", http.StatusOK, testDefaultTenant},
		{"header normalized to lowercase", "", strings.ToUpper(tenant), http.StatusOK, tenant},
		{"missing without default", "", "", http.StatusBadRequest, ""},
		{"malformed header", testDefaultTenant, "not-a-uuid", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTenantConfig()
			cfg.DefaultTenantID = tt.defaultTenant

			w, captured := serveTenant(t, cfg, "/test", tt.header)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedID, captured)
		})
	}
}

func TestTenantMiddleware_ErrorEnvelope(t *testing.T) {
	w, _ := serveTenant(t, DefaultTenantConfig(), "/test", "bogus")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidTenant, resp.Error.Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)
}

func TestTenantMiddleware_SkipPaths(t *testing.T) {
	w, captured := serveTenant(t, DefaultTenantConfig(), "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured)
}

func TestTenantMiddleware_ContextPropagation(t *testing.T) {
	tenant := uuid.New().String()
	router := gin.New()
	router.Use(TenantMiddleware())

	var fromCtx string
	router.GET("/test", func(c *gin.Context) {
		fromCtx = logger.GetTenantID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TenantHeaderKey, tenant)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenant, fromCtx)
}

func TestGetTenantUUID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id, err := GetTenantUUID(c)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	tenant := uuid.New()
	c.Set(TenantIDKey, tenant.String())
	id, err = GetTenantUUID(c)
	require.NoError(t, err)
	assert.Equal(t, tenant, id)
}

func TestDefaultTenantConfig(t *testing.T) {
	cfg := DefaultTenantConfig()
	assert.Empty(t, cfg.DefaultTenantID)
	assert.Contains(t, cfg.SkipPaths, "/health")
}
