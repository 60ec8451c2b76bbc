package apihandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/metrics"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/utils"
)

const maxTrendMonths = 24

// loadFilteredInputs reads the filter criteria and takes a snapshot of the stored responses.
// It writes the error response itself and returns ok=false then.
func (h *HttpEndpoints) loadFilteredInputs(c *gin.Context, handler string) ([]types.SurveyResponse, metrics.FilterCriteria, bool) {
	criteria, err := apihelpers.ParseFilterCriteriaFromCtx(c)
	if err != nil {
		slog.Debug(handler+": invalid filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, criteria, false
	}

	all, err := h.responses.GetResponses(c.Request.Context())
	if err != nil {
		slog.Error(handler+": could not read responses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read responses"})
		return nil, criteria, false
	}
	return all, criteria, true
}

// bankFromQuery resolves the bankId query parameter against the catalogue.
func (h *HttpEndpoints) bankFromQuery(c *gin.Context) (types.Bank, bool) {
	bankID := c.Query("bankId")
	if !utils.IsURLSafe(bankID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bankId missing or malformed"})
		return types.Bank{}, false
	}
	bank, ok := h.banks.ByID(bankID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown bank"})
		return types.Bank{}, false
	}
	return bank, true
}

func monthsFromQuery(c *gin.Context) (int, bool) {
	raw := c.Query("months")
	if raw == "" {
		return metrics.DEFAULT_TREND_MONTHS, true
	}
	months, err := strconv.Atoi(raw)
	if err != nil || months < 1 || months > maxTrendMonths {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and " + strconv.Itoa(maxTrendMonths)})
		return 0, false
	}
	return months, true
}
