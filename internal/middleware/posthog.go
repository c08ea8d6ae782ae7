package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/pennywise_backend/internal/utils"
)

// PosthogMiddleware captures one analytics event per authenticated API request.
// A no-op when analytics is not configured.
func PosthogMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !client.IsInitialized() {
			return
		}
		userID, ok := GetUserIDFromCtx(c)
		if !ok {
			return
		}
		client.Enqueue(userID, "api_request", map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
	}
}
