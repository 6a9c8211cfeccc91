package middleware

import (
	"net/http"
	"strings"

	"github.com/TharakaGamage830/OmniDash/pkg/database"
	"github.com/TharakaGamage830/OmniDash/pkg/logger"
	"github.com/TharakaGamage830/OmniDash/pkg/metrics"
	"github.com/TharakaGamage830/OmniDash/pkg/models"
	"github.com/TharakaGamage830/OmniDash/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminContextKey = "admin"

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Protect requires a valid bearer token and attaches the referenced admin to
// the request context.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			metrics.AuthErrorsCounter.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := database.DB.First(&admin, claims.ID).Error; err != nil {
			metrics.AuthErrorsCounter.Inc()
			logger.GetLogger().Warn("token referenced unknown admin", zap.Uint("adminId", claims.ID))
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, admin not found"})
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// RequireSuperAdmin gates admin-directory writes behind the super-admin flag.
// Must run after Protect.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := AdminFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			c.Abort()
			return
		}
		if !admin.IsSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the admin to the context when a valid token is present
// but never rejects the request. Public listing uses it so includeHidden is
// honored only for authenticated callers.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.Next()
			return
		}

		var admin models.Admin
		if err := database.DB.First(&admin, claims.ID).Error; err == nil {
			c.Set(adminContextKey, admin)
		}
		c.Next()
	}
}

// AdminFromContext returns the authenticated admin set by Protect or OptionalAuth.
func AdminFromContext(c *gin.Context) (models.Admin, bool) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return models.Admin{}, false
	}
	admin, ok := value.(models.Admin)
	return admin, ok
}
