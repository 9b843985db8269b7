// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

// SessionCookie is the anonymous shopping session cookie name
const SessionCookie = "kimezu_session"

// SessionKey is the context key carrying the session id
const SessionKey = "session_id"

// Session assigns every visitor a shopping session id via cookie. The id
// keys the anonymous cart and combo selection in Redis; its lifetime
// follows the cart TTL.
func Session(cfg *config.Config) gin.HandlerFunc {
	maxAge := int(cfg.Cart.SessionTTL.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
		}

		// Always re-set to slide the expiry window
		c.SetCookie(SessionCookie, sessionID, maxAge, "/", "", cfg.IsProduction(), true)
		c.Set(SessionKey, sessionID)

		c.Next()
	}
}
