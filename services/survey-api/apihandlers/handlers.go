package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	surveyService *survey.SurveyService
	rateLimiter   *middlewares.KeyedRateLimiter
}

func NewHTTPHandler(
	surveyService *survey.SurveyService,
	rateLimiter *middlewares.KeyedRateLimiter,
) *HttpEndpoints {
	return &HttpEndpoints{
		surveyService: surveyService,
		rateLimiter:   rateLimiter,
	}
}
