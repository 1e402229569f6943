package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route on the caller's role. The comparison is an
// exact match over the closed role set, not a privilege scale: an admin
// does not pass a patient or nutritionist gate. Stakeholders have been
// flagged on the admin lockout this implies; until a decision lands the
// behavior stays as-is.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. " + role + " role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
