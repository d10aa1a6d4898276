package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"postsapp/tokens"
)

func protectedRouter(tm *tokens.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(tm))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tm := tokens.NewManager("test-secret-123", time.Hour, time.Hour)
	access, _, err := tm.Issue("user-42")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	protectedRouter(tm).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tm := tokens.NewManager("test-secret-123", time.Hour, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	protectedRouter(tm).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access token required")
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	tm := tokens.NewManager("test-secret-123", time.Hour, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	protectedRouter(tm).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access token required")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tm := tokens.NewManager("test-secret-123", time.Hour, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	protectedRouter(tm).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := tokens.NewManager("test-secret-123", -time.Minute, time.Hour)
	access, _, err := expired.Issue("user-42")
	assert.NoError(t, err)

	tm := tokens.NewManager("test-secret-123", time.Hour, time.Hour)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	protectedRouter(tm).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
