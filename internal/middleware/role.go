package middleware

import (
	"net/http"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/validation"
	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects the request unless the authenticated user holds the
// admin role. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Access denied. Admin role required."))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOwnershipOrAdmin rejects the request unless the authenticated user
// is an admin or the :id path parameter matches their own ID. Must run after
// Authenticate.
func RequireOwnershipOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
			c.Abort()
			return
		}

		targetID, err := validation.ParseUserID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "ID must be a positive integer"))
			c.Abort()
			return
		}

		if role == models.RoleAdmin || userID == targetID {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Access denied. You can only access your own data."))
		c.Abort()
	}
}
