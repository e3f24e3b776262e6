package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-32-characters"

func issueCookie(t *testing.T, tokens services.TokenService, user *models.User) *http.Cookie {
	t.Helper()
	signed, err := tokens.Issue(user)
	require.NoError(t, err)
	return &http.Cookie{Name: TokenCookie, Value: signed}
}

func authRouter(tokens services.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, role, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "role": role})
	})
	router.GET("/probe/:id", handlers...)
	return router
}

func TestAuthenticateMissingCookie(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/probe/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/probe/1", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := services.NewTokenService(testSecret, -time.Minute)
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens)

	user := &models.User{ID: 5, Email: "a@x.com", Role: models.RoleUser}
	req := httptest.NewRequest(http.MethodGet, "/probe/5", nil)
	req.AddCookie(issueCookie(t, expired, user))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateAttachesClaims(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens)

	user := &models.User{ID: 5, Email: "a@x.com", Role: models.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/probe/5", nil)
	req.AddCookie(issueCookie(t, tokens, user))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"role":"admin"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens, RequireAdmin())

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/1", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 1, Role: models.RoleAdmin}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("plain user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/1", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 1, Role: models.RoleUser}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin role required")
	})
}

func TestRequireOwnershipOrAdmin(t *testing.T) {
	tokens := services.NewTokenService(testSecret, time.Hour)
	router := authRouter(tokens, RequireOwnershipOrAdmin())

	t.Run("owner passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/5", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 5, Role: models.RoleUser}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other user rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/6", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 5, Role: models.RoleUser}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "your own data")
	})

	t.Run("admin may act on any id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/6", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 1, Role: models.RoleAdmin}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe/abc", nil)
		req.AddCookie(issueCookie(t, tokens, &models.User{ID: 5, Role: models.RoleUser}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
