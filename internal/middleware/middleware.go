package middleware

import (
	"net/http"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// TokenCookie is the name of the cookie carrying the bearer token.
const TokenCookie = "token"

// Context keys under which the authenticated identity is stored.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// Authenticate extracts the bearer token from the request cookie, verifies it
// and attaches the decoded claims to the request context. Requests without a
// valid token are rejected with 401.
func Authenticate(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookie)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrMissingToken, "Access denied. No token provided."))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			log.WithError(err).Warn("Authentication failed")
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidToken, "Invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// CurrentUser reads the authenticated identity attached by Authenticate.
// The second return is false when the request was not authenticated.
func CurrentUser(c *gin.Context) (uint, string, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, "", false
	}
	userID, ok := id.(uint)
	if !ok {
		return 0, "", false
	}
	role := c.GetString(ContextUserRole)
	return userID, role, true
}
