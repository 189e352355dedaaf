package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "oceanlk/internal/errors"
	"oceanlk/internal/models"
)

// RequireRole creates a Gin middleware that rejects requests whose
// authenticated role does not match. It must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			writeErrorEnvelope(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if value.(models.Role) != role {
			writeErrorEnvelope(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin gates the review-queue and user-management routes.
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}
