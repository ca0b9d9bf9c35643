package middleware

import (
	"net/http"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext retrieves the authenticated caller's role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(roleKey).(string)
	return domain.Role(role), ok && role != ""
}

// GetCompanyIDFromContext retrieves the caller's company id, nil for admins.
func GetCompanyIDFromContext(c *gin.Context) *string {
	companyID, ok := c.Request.Context().Value(companyIDKey).(string)
	if !ok || companyID == "" {
		return nil
	}
	return &companyID
}

// RequireAdmin aborts with 403 unless the authenticated caller is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok || role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
