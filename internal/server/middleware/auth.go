package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agrimitra/internal/pkg/ctxutil"
	"agrimitra/internal/pkg/jwt"
)

// bearerToken extracts the token from an Authorization header, empty when
// absent or malformed.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Auth requires a valid Bearer token and injects the user id into the
// request context.
func Auth(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "authorization required",
			})
			c.Abort()
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40102,
				"message": "invalid or expired token",
			})
			c.Abort()
			return
		}

		ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth injects the user id when a valid Bearer token is present
// and lets the request through anonymously otherwise. Chat never requires
// sign-in; it only persists for signed-in farmers.
func OptionalAuth(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := jwtUtil.ValidateToken(tokenString); err == nil {
				ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
