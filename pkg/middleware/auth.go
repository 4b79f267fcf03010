package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unburdy/scheduling-module/pkg/auth"
)

// AuthMiddleware validates JWT tokens and sets the tenant/user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing authorization header"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Use Bearer <token> format"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateJWT(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		// Set identity in context
		c.Set("userID", claims.UserID)
		c.Set("tenantID", claims.TenantID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from the Gin context
func GetTenantID(c *gin.Context) (uint, error) {
	value, exists := c.Get("tenantID")
	if !exists {
		return 0, fmt.Errorf("tenant not set in context")
	}

	tenantID, ok := value.(uint)
	if !ok {
		return 0, fmt.Errorf("tenant has unexpected type %T", value)
	}
	return tenantID, nil
}

// GetUserID retrieves the user ID from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("user not set in context")
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, fmt.Errorf("user has unexpected type %T", value)
	}
	return userID, nil
}
