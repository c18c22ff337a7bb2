package middleware

import "github.com/gin-gonic/gin"

// userKey is the key used to store the authenticated username in the
// request context.
const userKey = contextKey("user")

// GetUserFromContext retrieves the authenticated username from the Gin
// context. It returns the username and a boolean indicating if it was
// found.
func GetUserFromContext(c *gin.Context) (string, bool) {
	if val := c.Request.Context().Value(userKey); val != nil {
		if username, ok := val.(string); ok {
			return username, true
		}
	}
	return "", false
}
