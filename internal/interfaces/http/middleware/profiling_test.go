package middleware

import (
	"net/http"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPaths, "/health")
}

func TestProfilingMiddleware_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(ProfilingWithConfig(ProfilingConfig{Enabled: false}))

	var route string
	router.GET("/test", func(c *gin.Context) {
		route, _ = pprof.Label(c.Request.Context(), "route")
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", nil).Code)
	assert.Empty(t, route)
}

func TestProfilingMiddleware_Labels(t *testing.T) {
	tenant := uuid.New().String()
	router := gin.New()
	router.Use(TenantMiddleware(), Profiling())

	labels := map[string]string{}
	router.GET("/api/v1/reports/balance-sheet/summary", func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			labels[key] = value
			return true
		})
		c.Status(http.StatusOK)
	})

	w := serve(router, http.MethodGet, "/api/v1/reports/balance-sheet/summary",
		map[string]string{TenantHeaderKey: tenant, RequestIDHeader: "req-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/reports/balance-sheet/summary", labels["route"])
	assert.Equal(t, http.MethodGet, labels["method"])
	assert.Equal(t, "summary", labels["operation"])
	assert.Equal(t, tenant, labels["tenant_id"])
	assert.NotContains(t, labels, "request_id")
}

func TestProfilingMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(Profiling())

	called := false
	var route string
	router.GET("/health", func(c *gin.Context) {
		called = true
		route, _ = pprof.Label(c.Request.Context(), "route")
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodGet, "/health", nil)
	assert.True(t, called)
	assert.Empty(t, route)
}

func TestOperationFromRoute(t *testing.T) {
	tests := []struct {
		route    string
		expected string
	}{
		{"/api/v1/reports/balance-sheet", "balance-sheet"},
		{"/api/v1/reports/balance-sheet/refresh", "refresh"},
		{"/api/v1/items/:id", "items"},
		{"/files/*path", "files"},
		{"/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, operationFromRoute(tt.route))
		})
	}
}
