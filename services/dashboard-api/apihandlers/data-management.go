package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/seed"
)

func (h *HttpEndpoints) AddDataManagementAPI(rg *gin.RouterGroup) {
	dataGroup := rg.Group("/data")
	dataGroup.Use(h.requireAuth(), mw.IsAdminUser())
	{
		dataGroup.GET("/summary", h.getDataSummary)
		dataGroup.POST("/seed", h.seedSampleData)
	}
}

func (h *HttpEndpoints) getDataSummary(c *gin.Context) {
	count, err := h.responses.CountResponses(c.Request.Context())
	if err != nil {
		slog.Error("getDataSummary: could not count responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count responses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"responseCount":  count,
		"surveyKey":      h.definition.Key,
		"surveyVersion":  h.definition.Version,
		"bankCount":      len(h.banks),
		"questionsCount": len(h.definition.Questions),
	})
}

// seedSampleData is a no-op when the store already holds responses.
func (h *HttpEndpoints) seedSampleData(c *gin.Context) {
	written, err := seed.Seed(c.Request.Context(), h.responses, h.banks, seed.Options{
		RandomSource: seed.DEFAULT_RANDOM_SOURCE,
		Now:          h.now(),
	})
	if err != nil {
		slog.Error("seedSampleData: seeding failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "seeding failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": written})
}
