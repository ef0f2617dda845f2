package middleware

import (
	"net/http"
	"strings"

	"fixly/models"
	"fixly/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and, when the auth cache is
// available, checks the session has not been revoked. On success the
// caller's userID and role are placed in the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, role, err := utils.ClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if cache := utils.AuthCacheClient; cache != nil {
			key := "session:" + utils.HashToken(tokenString)
			if exists, err := cache.Exists(c.Request.Context(), key).Result(); err != nil || exists == 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
				return
			}
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole rejects callers whose session role does not match.
// Mount after AuthRequired.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action requires the " + string(role) + " role",
			})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user's ID from the gin context.
func CallerID(c *gin.Context) string {
	return c.GetString("userID")
}

// CallerRole returns the authenticated user's role from the gin context.
func CallerRole(c *gin.Context) models.Role {
	return models.Role(c.GetString("role"))
}
