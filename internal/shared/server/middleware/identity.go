package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hirepulse-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Identity reads the caller identity injected by the upstream gateway.
// Authentication itself happens outside this service; requests arriving
// without an identity header are rejected before any computation.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			respond.Error(c, http.StatusBadRequest, "missing user identity")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
