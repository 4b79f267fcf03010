package api

import (
	"github.com/gin-gonic/gin"

	"github.com/unburdy/scheduling-module/pkg/middleware"
)

// GetTenantID retrieves the tenant ID from the Gin context
func GetTenantID(c *gin.Context) (uint, error) {
	return middleware.GetTenantID(c)
}

// GetUserID retrieves the user ID from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	return middleware.GetUserID(c)
}

// AuthMiddleware validates JWT tokens and populates the tenant context
func AuthMiddleware() gin.HandlerFunc {
	return middleware.AuthMiddleware()
}
