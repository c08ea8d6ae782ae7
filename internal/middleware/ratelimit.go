package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitMiddleware applies a per-client-IP rate limit. The rate string uses
// the limiter format, e.g. "10-M" for ten requests per minute. Applied to the
// auth endpoints to slow down credential stuffing.
func RateLimitMiddleware(rate string) gin.HandlerFunc {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		// A bad rate is a startup misconfiguration; refuse requests loudly
		// rather than running unlimited.
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter misconfigured"})
		}
	}

	store := memory.NewStore()
	return mgin.NewMiddleware(limiter.New(store, parsed))
}
