package surveyresponses

import (
	"strconv"
	"strings"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const listSep = "; "

// valueToCell renders one CSV cell: text and lists are always quoted with inner quotes
// doubled, numbers and booleans are written bare, absent values stay empty.
func valueToCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return quote(val)
	case []string:
		return quote(strings.Join(val, listSep))
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// responseToCells maps a response onto the column list.
func responseToCells(r types.SurveyResponse, columns []string) []string {
	fixed := map[string]any{
		"responseId":           r.ID,
		"deviceId":             r.DeviceID,
		"country":              r.Country,
		"submittedAt":          time.Unix(r.SubmittedAt, 0).UTC().Format(time.RFC3339),
		"status":               r.Status,
		"languageAtSubmission": r.LanguageAtSubmission,
		"durationSeconds":      r.DurationSeconds,
	}

	cells := make([]string, len(columns))
	for i, col := range columns {
		if v, ok := fixed[col]; ok {
			cells[i] = valueToCell(v)
			continue
		}
		cells[i] = valueToCell(lookupAnswer(r.Answers, col))
	}
	return cells
}

func lookupAnswer(answers types.Answers, col string) any {
	if v, ok := answers[col]; ok {
		if _, isRating := v.(map[string]float64); !isRating {
			return v
		}
	}
	field, bankID, found := strings.Cut(col, ratingColSep)
	if !found {
		return nil
	}
	ratings, ok := answers[field].(map[string]float64)
	if !ok {
		return nil
	}
	if n, ok := ratings[bankID]; ok {
		return n
	}
	return nil
}
