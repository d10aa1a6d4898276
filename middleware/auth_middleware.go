package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"postsapp/auth"
)

// AuthMiddleware gates protected routes behind a bearer access token.
// A missing token and an invalid one get different messages; that
// distinction is fine at the boundary, unlike the refresh-token
// internals.
func AuthMiddleware(tm auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tm.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
