package middleware

import (
	"net/http"

	"quadras/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects requests whose actor holds none of the given roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
			"code":  0,
		})
	}
}
