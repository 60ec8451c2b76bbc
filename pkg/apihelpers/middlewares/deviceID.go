package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderDeviceID   = "X-Device-ID"
	deviceIDPrefix   = "dev_"
	ContextDeviceKey = "deviceID"
)

// RequireDeviceID accepts device tokens of the form dev_<uuid> and stores them under "deviceID".
func RequireDeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(HeaderDeviceID)
		id, found := strings.CutPrefix(deviceID, deviceIDPrefix)
		if !found {
			slog.Debug("RequireDeviceID Middleware: device id missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "device id missing"})
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			slog.Debug("RequireDeviceID Middleware: malformed device id", slog.String("deviceID", deviceID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed device id"})
			return
		}
		c.Set(ContextDeviceKey, deviceID)
		c.Next()
	}
}
