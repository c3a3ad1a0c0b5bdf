package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sritek/scoops-fees/internal/presentation/http/dto/response"
)

// SessionHeader carries the academic session every fee operation is scoped
// to. Sessions are owned by a separate service; the header is just the ID.
const SessionHeader = "X-Academic-Session"

// SessionMiddleware requires a valid academic session header and stores the
// session ID on the Gin context for handlers to pass into services.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(SessionHeader)
		if header == "" {
			response.BadRequest(c, "X-Academic-Session header is required")
			c.Abort()
			return
		}

		sessionID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid academic session ID")
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the academic session ID from gin context
func GetSessionID(c *gin.Context) uuid.UUID {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := sessionID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
