package apihandlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/metrics"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"

	surveydefinition "github.com/Fkenogo/brand-health-analytics-banks/pkg/exporter/survey-definition"
	surveyresponses "github.com/Fkenogo/brand-health-analytics-banks/pkg/exporter/survey-responses"
)

func (h *HttpEndpoints) AddExportAPI(rg *gin.RouterGroup) {
	exportGroup := rg.Group("/export")
	exportGroup.Use(h.requireAuth())
	{
		exportGroup.GET("/responses", h.exportResponses) // ?format=csv|json + filters
		exportGroup.GET("/codebook", h.exportCodebook)   // ?lang=en
	}
}

func (h *HttpEndpoints) exportResponses(c *gin.Context) {
	format := c.DefaultQuery("format", surveyresponses.EXPORT_FORMAT_CSV)
	contentType := ""
	switch format {
	case surveyresponses.EXPORT_FORMAT_CSV:
		contentType = "text/csv; charset=utf-8"
	case surveyresponses.EXPORT_FORMAT_JSON:
		contentType = "application/json"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
		return
	}

	all, criteria, ok := h.loadFilteredInputs(c, "exportResponses")
	if !ok {
		return
	}
	subset := metrics.FilterResponses(all, criteria, h.now())

	filename := fmt.Sprintf("survey-responses_%s.%s", h.now().Format("2006-01-02"), format)
	if criteria.Country != "" {
		filename = fmt.Sprintf("survey-responses_%s_%s.%s", criteria.Country, h.now().Format("2006-01-02"), format)
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if err := surveyresponses.Export(c.Writer, format, h.definition, subset); err != nil {
		// headers are already sent
		slog.Error("exportResponses: export failed", slog.String("error", err.Error()))
		return
	}
	slog.Info("responses exported", slog.String("format", format), slog.Int("count", len(subset)))
}

func (h *HttpEndpoints) exportCodebook(c *gin.Context) {
	lang := c.DefaultQuery("lang", types.DEFAULT_LANGUAGE)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_codebook.csv", h.definition.Key, h.definition.Version))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := surveydefinition.NewSurveyInfoExporter(h.definition, lang).GetSurveyInfoCSV(c.Writer); err != nil {
		slog.Error("exportCodebook: export failed", slog.String("error", err.Error()))
	}
}
