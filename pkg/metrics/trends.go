package metrics

import (
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const DEFAULT_TREND_MONTHS = 6

type TrendPoint struct {
	Month     string `json:"month"`
	Period    string `json:"period"`
	Awareness int    `json:"awareness"`
	NPS       int    `json:"nps"`
	Usage     int    `json:"usage"`
	Sample    int    `json:"sampleSize"`
}

// TrendSeries returns one point per calendar month, oldest first, ending with the month of now.
// The time period of the criteria is ignored. Usage is the share of current users.
func TrendSeries(all []types.SurveyResponse, bankID string, criteria FilterCriteria, months int, now time.Time) []TrendPoint {
	if months <= 0 {
		months = DEFAULT_TREND_MONTHS
	}
	criteria.TimePeriod = ""

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		from := monthStart.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		subset := filterInRange(all, criteria, from, to)
		points = append(points, TrendPoint{
			Month:     from.Format("Jan"),
			Period:    from.Format("2006-01"),
			Awareness: roundHalfUp(AwarenessScore(subset, bankID)),
			NPS:       NetPromoterScore(subset, bankID),
			Usage:     roundHalfUp(percent(countContaining(subset, types.FIELD_CURRENTLY_USING, bankID), len(subset))),
			Sample:    len(subset),
		})
	}
	return points
}
