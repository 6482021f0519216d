package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/infrastructure/security"
)

// SessionHeader carries the viewer's session identifier.
const SessionHeader = "X-Galleria-Session-ID"

const sessionContextKey = "galleriaSessionID"

// SessionMiddleware resolves the viewer session ID from the request header,
// minting a fresh one for clients that do not send it. The resolved ID is
// echoed back so clients can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = security.GenerateULID()
		}
		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID resolved by SessionMiddleware.
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
