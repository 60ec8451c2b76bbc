package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

type CompetitorRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TopOfMind      int     `json:"tom"`
	TotalAwareness int     `json:"total"`
	NPS            int     `json:"nps"`
	Consideration  int     `json:"consideration"`
	Trend          float64 `json:"trend"`
	Loyalty        Loyalty `json:"loyalty"`
}

// CompetitorTable scores every bank in scope on the subset, sorted by total awareness.
// Banks with equal awareness keep catalogue order.
func CompetitorTable(subset []types.SurveyResponse, banks types.BankCatalogue) []CompetitorRow {
	rows := make([]CompetitorRow, 0, len(banks))
	for _, b := range banks {
		rows = append(rows, CompetitorRow{
			ID:             b.ID,
			Name:           shortName(b.Name),
			TopOfMind:      roundHalfUp(TopOfMindScore(subset, b)),
			TotalAwareness: roundHalfUp(AwarenessScore(subset, b.ID)),
			NPS:            NetPromoterScore(subset, b.ID),
			Consideration:  roundHalfUp(ConsiderationScore(subset, b.ID)),
			Loyalty:        LoyaltySegments(subset, b.ID),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalAwareness > rows[j].TotalAwareness
	})
	return rows
}

// Competitors filters the collection and builds the competitor table for the banks of the
// criteria's country. Trend is the awareness change against the preceding window.
func Competitors(all []types.SurveyResponse, banks types.BankCatalogue, criteria FilterCriteria, now time.Time) []CompetitorRow {
	subset := FilterResponses(all, criteria, now)
	rows := CompetitorTable(subset, banks.InScope(criteria.Country))

	prev, ok := previousWindow(all, criteria, now)
	if !ok {
		return rows
	}
	for i := range rows {
		rows[i].Trend = float64(rows[i].TotalAwareness - roundHalfUp(AwarenessScore(prev, rows[i].ID)))
	}
	return rows
}

// shortName drops a parenthesised suffix such as "Interbank (IBB)".
func shortName(name string) string {
	if i := strings.Index(name, " ("); i > 0 {
		return name[:i]
	}
	return name
}
