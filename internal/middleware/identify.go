package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/loanlink/loanlink-api/internal/utils"
)

// Identify reads an optional Bearer token and, when it is valid, puts the
// caller's email and role into the Gin context for handlers and logs.
// It never rejects a request; routes are open and identity is advisory.
func Identify(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := utils.ValidateJWT(jwtSecret, tokenString); err == nil {
				c.Set("userEmail", claims.Email)
				c.Set("userRole", claims.Role)
			}
		}
		c.Next()
	}
}
