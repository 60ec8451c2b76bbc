package metrics

import (
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	TIME_PERIOD_ALL      = "all"
	TIME_PERIOD_7_DAYS   = "7d"
	TIME_PERIOD_30_DAYS  = "30d"
	TIME_PERIOD_90_DAYS  = "90d"
	TIME_PERIOD_6_MONTHS = "6m"
)

// FilterCriteria restricts the responses an aggregation runs on. Empty fields impose no constraint.
type FilterCriteria struct {
	Country    string   `json:"country,omitempty"`
	AgeGroups  []string `json:"ageGroups,omitempty"`
	Genders    []string `json:"genders,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
	TimePeriod string   `json:"timePeriod,omitempty"`
}

func IsKnownTimePeriod(p string) bool {
	switch p {
	case "", TIME_PERIOD_ALL, TIME_PERIOD_7_DAYS, TIME_PERIOD_30_DAYS, TIME_PERIOD_90_DAYS, TIME_PERIOD_6_MONTHS:
		return true
	}
	return false
}

// periodStart returns the beginning of the window that ends at end. False for "all" or unknown periods.
func periodStart(period string, end time.Time) (time.Time, bool) {
	switch period {
	case TIME_PERIOD_7_DAYS:
		return end.AddDate(0, 0, -7), true
	case TIME_PERIOD_30_DAYS:
		return end.AddDate(0, 0, -30), true
	case TIME_PERIOD_90_DAYS:
		return end.AddDate(0, 0, -90), true
	case TIME_PERIOD_6_MONTHS:
		return end.AddDate(0, -6, 0), true
	}
	return time.Time{}, false
}

// FilterResponses returns the responses matching every supplied criterion. The time period is
// relative to now. The input slice is not modified.
func FilterResponses(all []types.SurveyResponse, criteria FilterCriteria, now time.Time) []types.SurveyResponse {
	from, windowed := periodStart(criteria.TimePeriod, now)
	if !windowed {
		return filterInRange(all, criteria, time.Time{}, time.Time{})
	}
	return filterInRange(all, criteria, from, now)
}

// previousWindow returns the responses of the window of equal length preceding the current one.
func previousWindow(all []types.SurveyResponse, criteria FilterCriteria, now time.Time) ([]types.SurveyResponse, bool) {
	start, ok := periodStart(criteria.TimePeriod, now)
	if !ok {
		return nil, false
	}
	prevStart, _ := periodStart(criteria.TimePeriod, start)
	return filterInRange(all, criteria, prevStart, start), true
}

// filterInRange keeps responses submitted in [from, to). Zero bounds are open.
func filterInRange(all []types.SurveyResponse, criteria FilterCriteria, from, to time.Time) []types.SurveyResponse {
	subset := make([]types.SurveyResponse, 0, len(all))
	for _, r := range all {
		if !matchesCriteria(r, criteria) {
			continue
		}
		submitted := time.Unix(r.SubmittedAt, 0)
		if !from.IsZero() && submitted.Before(from) {
			continue
		}
		if !to.IsZero() && !submitted.Before(to) {
			continue
		}
		subset = append(subset, r)
	}
	return subset
}

func matchesCriteria(r types.SurveyResponse, criteria FilterCriteria) bool {
	if criteria.Country != "" && ResponseCountry(r) != criteria.Country {
		return false
	}
	if !inSet(r.Answers.String(types.FIELD_AGE_GROUP), criteria.AgeGroups) {
		return false
	}
	if !inSet(r.Answers.String(types.FIELD_GENDER), criteria.Genders) {
		return false
	}
	return inSet(r.Status, criteria.Statuses)
}

// ResponseCountry prefers the answered country over the record field.
func ResponseCountry(r types.SurveyResponse) string {
	if c := r.Answers.String(types.FIELD_COUNTRY); c != "" {
		return c
	}
	return r.Country
}

func inSet(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
