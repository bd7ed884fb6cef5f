package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/auth"
)

const (
	ctxUserID = "user_id"
	ctxRoles  = "roles"
)

// RequireAuth ensures a valid JWT is present
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens) {
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and the role set contains requiredRole
func RequireAuthWithRole(tokens *auth.TokenManager, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens) {
			return
		}
		if !HasRole(c, requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// authenticate validates the bearer token and stores its claims, aborting with 401 otherwise.
func authenticate(c *gin.Context, tokens *auth.TokenManager) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	// Store claims in context for downstream handlers
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRoles, claims.Roles)
	return true
}

// CurrentUserID returns the authenticated person id, or 0 outside an auth group.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

func CurrentRoles(c *gin.Context) []string {
	return c.GetStringSlice(ctxRoles)
}

func HasRole(c *gin.Context, role string) bool {
	for _, r := range CurrentRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}
