package apihelpers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/metrics"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/utils"
)

// ParseFilterCriteriaFromCtx reads country, ageGroups, genders, statuses and timePeriod from the
// query. List parameters may be repeated or comma separated.
func ParseFilterCriteriaFromCtx(c *gin.Context) (metrics.FilterCriteria, error) {
	criteria := metrics.FilterCriteria{
		Country:    strings.ToLower(strings.TrimSpace(c.Query("country"))),
		AgeGroups:  queryList(c, "ageGroups"),
		Genders:    queryList(c, "genders"),
		Statuses:   queryList(c, "statuses"),
		TimePeriod: c.DefaultQuery("timePeriod", metrics.TIME_PERIOD_ALL),
	}

	if criteria.Country != "" && !utils.ContainsString(types.SUPPORTED_COUNTRIES, criteria.Country) {
		return criteria, fmt.Errorf("unknown country: %s", criteria.Country)
	}
	if !metrics.IsKnownTimePeriod(criteria.TimePeriod) {
		return criteria, fmt.Errorf("unknown time period: %s", criteria.TimePeriod)
	}
	return criteria, nil
}

func queryList(c *gin.Context, key string) []string {
	values := []string{}
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
