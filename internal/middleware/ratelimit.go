package middleware

import (
	"net/http"

	"github.com/dmarkova/slacklite/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RateLimit caps mutating requests per authenticated user. Runs after
// AuthMiddleware so the user id is available as the counter key.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(UserIDKey).(uuid.UUID)
		if !limiter.Allow(userID.String()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
