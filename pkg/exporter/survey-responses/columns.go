package surveyresponses

import (
	"sort"
	"strings"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const ratingColSep = "."

// FixedColumns are written first, in this order, for every export.
var FixedColumns = []string{
	"responseId",
	"deviceId",
	"country",
	"submittedAt",
	"status",
	"languageAtSubmission",
	"durationSeconds",
}

// ColumnCollector accumulates the union of answer columns over a set of responses. Rating
// answers contribute one column per rated bank.
type ColumnCollector struct {
	questionOrder map[string]int
	seen          map[string]bool
}

// NewColumnCollector orders columns by the given question ids; unknown fields go last.
func NewColumnCollector(questionIDs []string) *ColumnCollector {
	order := make(map[string]int, len(questionIDs))
	for i, id := range questionIDs {
		order[id] = i
	}
	return &ColumnCollector{
		questionOrder: order,
		seen:          map[string]bool{},
	}
}

func NewColumnCollectorForDefinition(def types.SurveyDefinition) *ColumnCollector {
	ids := make([]string, len(def.Questions))
	for i, q := range def.Questions {
		ids[i] = q.ID
	}
	return NewColumnCollector(ids)
}

func (cc *ColumnCollector) Add(r types.SurveyResponse) {
	for field, value := range r.Answers {
		if ratings, ok := value.(map[string]float64); ok {
			for bankID := range ratings {
				cc.seen[field+ratingColSep+bankID] = true
			}
			continue
		}
		cc.seen[field] = true
	}
}

// Columns returns the fixed columns followed by the collected answer columns.
func (cc *ColumnCollector) Columns() []string {
	answerCols := make([]string, 0, len(cc.seen))
	for col := range cc.seen {
		answerCols = append(answerCols, col)
	}
	sort.Slice(answerCols, func(i, j int) bool {
		oi, okI := cc.order(answerCols[i])
		oj, okJ := cc.order(answerCols[j])
		if okI != okJ {
			return okI
		}
		if okI && oi != oj {
			return oi < oj
		}
		return answerCols[i] < answerCols[j]
	})

	return append(append([]string{}, FixedColumns...), answerCols...)
}

func (cc *ColumnCollector) order(col string) (int, bool) {
	field, _, _ := strings.Cut(col, ratingColSep)
	if i, ok := cc.questionOrder[col]; ok {
		return i, true
	}
	i, ok := cc.questionOrder[field]
	return i, ok
}
