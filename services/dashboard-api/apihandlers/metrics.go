package apihandlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/metrics"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/report"
)

func (h *HttpEndpoints) AddMetricsAPI(rg *gin.RouterGroup) {
	dashboardGroup := rg.Group("/dashboard")
	dashboardGroup.Use(h.requireAuth())
	{
		dashboardGroup.GET("/banks", h.getBanks)              // ?country=rwanda
		dashboardGroup.GET("/metrics", h.getMetrics)          // ?bankId=BK_RW&country=&ageGroups=&genders=&timePeriod=
		dashboardGroup.GET("/competitors", h.getCompetitors)  // same filters, no bankId
		dashboardGroup.GET("/nps-drivers", h.getNPSDrivers)   // ?bankId=BK_RW
		dashboardGroup.GET("/trends", h.getTrends)            // ?bankId=BK_RW&months=6
		dashboardGroup.GET("/report.pdf", h.getMetricsReport) // same as /metrics
	}
}

func (h *HttpEndpoints) getBanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"banks": h.banks.InScope(c.Query("country"))})
}

func (h *HttpEndpoints) getMetrics(c *gin.Context) {
	bank, ok := h.bankFromQuery(c)
	if !ok {
		return
	}
	all, criteria, ok := h.loadFilteredInputs(c, "getMetrics")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, metrics.ComputeDashboardMetrics(all, bank.ID, h.banks, criteria, h.now()))
}

func (h *HttpEndpoints) getCompetitors(c *gin.Context) {
	all, criteria, ok := h.loadFilteredInputs(c, "getCompetitors")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"competitors": metrics.Competitors(all, h.banks, criteria, h.now())})
}

func (h *HttpEndpoints) getNPSDrivers(c *gin.Context) {
	bank, ok := h.bankFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": metrics.NPSDrivers(bank.ID)})
}

func (h *HttpEndpoints) getTrends(c *gin.Context) {
	bank, ok := h.bankFromQuery(c)
	if !ok {
		return
	}
	months, ok := monthsFromQuery(c)
	if !ok {
		return
	}
	all, criteria, ok := h.loadFilteredInputs(c, "getTrends")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": metrics.TrendSeries(all, bank.ID, criteria, months, h.now())})
}

func (h *HttpEndpoints) getMetricsReport(c *gin.Context) {
	bank, ok := h.bankFromQuery(c)
	if !ok {
		return
	}
	all, criteria, ok := h.loadFilteredInputs(c, "getMetricsReport")
	if !ok {
		return
	}

	now := h.now()
	r := report.MetricsReport{
		Bank:        bank,
		Criteria:    criteria,
		Dashboard:   metrics.ComputeDashboardMetrics(all, bank.ID, h.banks, criteria, now),
		Competitors: metrics.Competitors(all, h.banks, criteria, now),
		Trend:       metrics.TrendSeries(all, bank.ID, criteria, metrics.DEFAULT_TREND_MONTHS, now),
		GeneratedAt: now,
	}

	// rendered into memory first so a failure can still become a 500
	buf := &bytes.Buffer{}
	if err := r.WritePDF(buf); err != nil {
		slog.Error("getMetricsReport: could not render report", slog.String("bankID", bank.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render report"})
		return
	}

	filename := fmt.Sprintf("brand-health_%s_%s.pdf", bank.ID, now.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
