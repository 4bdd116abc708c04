package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IdentityHeader carries the caller's user id, injected by the
// fronting gateway after it has authenticated the request.
const IdentityHeader = "X-User-ID"

// Identity is a Gin middleware that trusts the gateway-injected user
// id header and exposes it to handlers as an int64 under "userID".
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(IdentityHeader)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity header"})
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity header"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
