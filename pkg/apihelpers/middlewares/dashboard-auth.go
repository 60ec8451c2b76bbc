package middlewares

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	jwthandling "github.com/Fkenogo/brand-health-analytics-banks/pkg/jwt-handling"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-Key"

	ServiceUserSubject = "service"
)

// DashboardAuthMiddleware accepts either a configured API key (automated exports) or an admin JWT.
// The validated claims are stored under "validatedToken".
func DashboardAuthMiddleware(tokenSignKey string, apiKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(HeaderAPIKey); apiKey != "" {
			validateServiceUser(c, apiKey, apiKeys)
			return
		}
		validateAdminUser(c, tokenSignKey)
	}
}

func validateServiceUser(c *gin.Context, apiKey string, apiKeys []string) {
	slog.Debug("auth as service user")
	if !isValidAPIKey(apiKey, apiKeys) {
		slog.Warn("Attempted to use invalid api key", slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	c.Set("validatedToken", &jwthandling.AdminUserClaims{
		IsAdmin: false,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: ServiceUserSubject,
		},
	})
	c.Next()
}

func isValidAPIKey(key string, validKeys []string) bool {
	for _, vk := range validKeys {
		if vk != "" && subtle.ConstantTimeCompare([]byte(key), []byte(vk)) == 1 {
			return true
		}
	}
	return false
}

func validateAdminUser(c *gin.Context, tokenSignKey string) {
	slog.Debug("auth as admin user")
	token, err := extractToken(c)
	if err != nil {
		slog.Warn("no Authorization token found")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	parsedToken, ok, err := jwthandling.ValidateAdminUserToken(token, tokenSignKey)
	if err != nil || !ok {
		slog.Warn("token validation failed")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
		return
	}
	c.Set("validatedToken", parsedToken)
	c.Next()
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader(HeaderAuthorization)
	if header == "" {
		return "", errors.New("No Authorization header found")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if len(token) == 0 {
		return "", errors.New("No token found in Authorization header")
	}
	return token, nil
}
