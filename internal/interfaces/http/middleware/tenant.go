package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mfgerp/backend/internal/infrastructure/logger"
	"github.com/mfgerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// TenantIDKey is the gin context key holding the tenant ID
	TenantIDKey = "tenant_id"
	// TenantHeaderKey is the request header naming the tenant
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// DefaultTenantID is used when the header is absent. Empty makes the header mandatory.
	DefaultTenantID string
	// SkipPaths are served without tenant resolution
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultTenantConfig returns a config that requires the tenant header
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready"},
	}
}

// TenantMiddleware resolves the tenant with default configuration
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig resolves the tenant from X-Tenant-ID, falling back
// to the configured default. A malformed ID is rejected with 400.
func TenantMiddlewareWithConfig(cfg TenantConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		tenantID := c.GetHeader(TenantHeaderKey)
		method := "header"
		if tenantID == "" {
			tenantID = cfg.DefaultTenantID
			method = "default"
		}

		if tenantID == "" {
			respondTenantError(c, "Tenant identification required")
			return
		}
		parsed, err := uuid.Parse(tenantID)
		if err != nil {
			log.Debug("Rejected malformed tenant ID",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
			respondTenantError(c, "Invalid tenant ID format")
			return
		}

		tenantID = parsed.String()
		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID))

		log.Debug("Tenant identified",
			zap.String("tenant_id", tenantID),
			zap.String("method", method),
		)
		c.Next()
	}
}

func respondTenantError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidTenant, message, GetRequestID(c)))
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}
