package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type AuthConfig struct {
	PasswordHash string
	TokenSignKey string
	ExpiresIn    time.Duration
	APIKeys      []string
	LoginLimiter *middlewares.KeyedRateLimiter
}

type HttpEndpoints struct {
	responses  store.ResponseStore
	definition types.SurveyDefinition
	banks      types.BankCatalogue
	auth       AuthConfig
	now        func() time.Time
}

func NewHTTPHandler(
	responses store.ResponseStore,
	definition types.SurveyDefinition,
	banks types.BankCatalogue,
	auth AuthConfig,
) *HttpEndpoints {
	return &HttpEndpoints{
		responses:  responses,
		definition: definition,
		banks:      banks,
		auth:       auth,
		now:        time.Now,
	}
}

func (h *HttpEndpoints) requireAuth() gin.HandlerFunc {
	return middlewares.DashboardAuthMiddleware(h.auth.TokenSignKey, h.auth.APIKeys)
}
