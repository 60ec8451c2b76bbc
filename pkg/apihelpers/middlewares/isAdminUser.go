package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Fkenogo/brand-health-analytics-banks/pkg/jwt-handling"
)

// IsAdminUser must run after DashboardAuthMiddleware. Service users are not admins.
func IsAdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("IsAdminUser: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken, ok := tokenValue.(*jwthandling.AdminUserClaims)
		if !ok || !parsedToken.IsAdmin {
			slog.Warn("IsAdminUser Middleware: non admin user tried to access admin endpoint", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to admin endpoint"})
			return
		}
		c.Next()
	}
}
