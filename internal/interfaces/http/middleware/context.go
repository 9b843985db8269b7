// internal/interfaces/http/middleware/context.go
package middleware

import (
	"github.com/gin-gonic/gin"
)

// GetUserIDFromContext returns the authenticated user's id, or 0 when the
// request is anonymous
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// GetSessionIDFromContext returns the shopping session id set by Session
func GetSessionIDFromContext(c *gin.Context) string {
	return c.GetString(SessionKey)
}
