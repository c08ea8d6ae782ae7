package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/pennywise_backend/internal/utils"
	"github.com/pennywise-app/pennywise_backend/pkg/config"
)

// AuthMiddleware validates the Bearer token and stores the authenticated user
// ID in the gin context for handlers to read.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a Bearer token"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, cfg.JWTSecret)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("rejected invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}

// GetUserIDFromCtx returns the authenticated user ID set by AuthMiddleware.
func GetUserIDFromCtx(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}
