package metrics

import (
	"math"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	NPS_PROMOTER_MIN  = 9
	NPS_DETRACTOR_MAX = 6
)

// percent is count/total*100, or 0 when total is 0.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// ratio is a/b*100, or 0 when b is 0.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b * 100
}

// roundHalfUp rounds halves towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func countContaining(subset []types.SurveyResponse, field string, bankID string) int {
	n := 0
	for _, r := range subset {
		if r.Answers.Contains(field, bankID) {
			n++
		}
	}
	return n
}

func countEqual(subset []types.SurveyResponse, field string, bankID string) int {
	n := 0
	for _, r := range subset {
		if r.Answers.String(field) == bankID {
			n++
		}
	}
	return n
}

func countMatching(subset []types.SurveyResponse, match func(types.Answers) bool) int {
	n := 0
	for _, r := range subset {
		if match(r.Answers) {
			n++
		}
	}
	return n
}

func selectMatching(subset []types.SurveyResponse, match func(types.Answers) bool) []types.SurveyResponse {
	selected := []types.SurveyResponse{}
	for _, r := range subset {
		if match(r.Answers) {
			selected = append(selected, r)
		}
	}
	return selected
}

// TopOfMindScore is the share of responses whose first spontaneous mention matches the bank.
func TopOfMindScore(subset []types.SurveyResponse, bank types.Bank) float64 {
	mentions := countMatching(subset, func(a types.Answers) bool {
		return bank.MatchesName(a.String(types.FIELD_TOP_OF_MIND))
	})
	return percent(mentions, len(subset))
}

// AwarenessScore is the share of responses listing the bank as known when prompted.
func AwarenessScore(subset []types.SurveyResponse, bankID string) float64 {
	return percent(countContaining(subset, types.FIELD_AWARE_BANKS, bankID), len(subset))
}

// ConsiderationScore is the share of responses that would consider the bank in future.
func ConsiderationScore(subset []types.SurveyResponse, bankID string) float64 {
	return percent(countContaining(subset, types.FIELD_WOULD_CONSIDER, bankID), len(subset))
}

type NPSBreakdown struct {
	Score      int `json:"value"`
	Promoters  int `json:"p"`
	Passives   int `json:"pass"`
	Detractors int `json:"d"`
	Rated      int `json:"rated"`
}

// recommendationRating reads the 0-10 rating a response gave the bank. A plain number answer
// is taken as a rating for any bank.
func recommendationRating(a types.Answers, bankID string) (float64, bool) {
	if v, ok := a.Number(types.FIELD_RECOMMENDATION); ok {
		return v, isRating(v)
	}
	v, ok := a.Ratings(types.FIELD_RECOMMENDATION)[bankID]
	return v, ok && isRating(v)
}

func isRating(v float64) bool {
	return v >= types.RATING_MIN && v <= types.RATING_MAX
}

// NetPromoterBreakdown splits the bank's ratings into promoters, passives and detractors.
// Shares are percentages of the rated responses.
func NetPromoterBreakdown(subset []types.SurveyResponse, bankID string) NPSBreakdown {
	promoters, detractors, rated := 0, 0, 0
	for _, r := range subset {
		v, ok := recommendationRating(r.Answers, bankID)
		if !ok {
			continue
		}
		rated++
		switch {
		case v >= NPS_PROMOTER_MIN:
			promoters++
		case v <= NPS_DETRACTOR_MAX:
			detractors++
		}
	}
	if rated == 0 {
		return NPSBreakdown{}
	}
	return NPSBreakdown{
		Score:      roundHalfUp(float64(promoters-detractors) / float64(rated) * 100),
		Promoters:  roundHalfUp(percent(promoters, rated)),
		Passives:   roundHalfUp(percent(rated-promoters-detractors, rated)),
		Detractors: roundHalfUp(percent(detractors, rated)),
		Rated:      rated,
	}
}

// NetPromoterScore is in [-100, 100], and 0 when nobody rated the bank.
func NetPromoterScore(subset []types.SurveyResponse, bankID string) int {
	return NetPromoterBreakdown(subset, bankID).Score
}

type Funnel struct {
	Awareness     int `json:"awareness"`
	Consideration int `json:"consideration"`
	EverUsed      int `json:"everUsed"`
	Current       int `json:"current"`
	Preferred     int `json:"preferred"`
	Conversion    int `json:"conversion"`
	Retention     int `json:"retention"`
	Adoption      int `json:"adoption"`

	// Score is the unrounded mean of conversion, retention and adoption.
	Score float64 `json:"-"`
}

func (f Funnel) RoundedScore() int {
	return roundHalfUp(f.Score)
}

// MomentumFunnel follows respondents from awareness to main bank for one bank.
func MomentumFunnel(subset []types.SurveyResponse, bankID string) Funnel {
	total := len(subset)
	aware := countContaining(subset, types.FIELD_AWARE_BANKS, bankID)
	consider := countContaining(subset, types.FIELD_WOULD_CONSIDER, bankID)
	everUsed := countContaining(subset, types.FIELD_EVER_USED, bankID)
	current := countContaining(subset, types.FIELD_CURRENTLY_USING, bankID)
	preferred := countEqual(subset, types.FIELD_MAIN_BANK, bankID)

	conversion := ratio(float64(everUsed), float64(aware))
	retention := ratio(float64(current), float64(everUsed))
	adoption := ratio(float64(preferred), float64(current))

	return Funnel{
		Awareness:     roundHalfUp(percent(aware, total)),
		Consideration: roundHalfUp(percent(consider, total)),
		EverUsed:      roundHalfUp(percent(everUsed, total)),
		Current:       roundHalfUp(percent(current, total)),
		Preferred:     roundHalfUp(percent(preferred, total)),
		Conversion:    roundHalfUp(conversion),
		Retention:     roundHalfUp(retention),
		Adoption:      roundHalfUp(adoption),
		Score:         (conversion + retention + adoption) / 3,
	}
}

// Loyalty segments are independent lenses on the population and do not sum to 100.
type Loyalty struct {
	Committed   int `json:"committed"`
	Favors      int `json:"favors"`
	Potential   int `json:"potential"`
	Rejectors   int `json:"rejectors"`
	Accessibles int `json:"accessibles"`
}

func LoyaltySegments(subset []types.SurveyResponse, bankID string) Loyalty {
	total := len(subset)
	aware := countContaining(subset, types.FIELD_AWARE_BANKS, bankID)
	potential := countMatching(subset, func(a types.Answers) bool {
		return a.Contains(types.FIELD_WOULD_CONSIDER, bankID) || a.Contains(types.FIELD_INTERESTED_UNSURE, bankID)
	})

	return Loyalty{
		Committed:   roundHalfUp(percent(countEqual(subset, types.FIELD_COMMITTED, bankID), total)),
		Favors:      roundHalfUp(percent(countContaining(subset, types.FIELD_FAVOURITES, bankID), total)),
		Potential:   roundHalfUp(percent(potential, total)),
		Rejectors:   roundHalfUp(percent(countContaining(subset, types.FIELD_NEVER_CONSIDER, bankID), total)),
		Accessibles: roundHalfUp(percent(total-aware, total)),
	}
}

type SegmentNPS struct {
	NonTriers int `json:"nonTriers"`
	Lapsers   int `json:"lapsers"`
	NonBUMO   int `json:"nonBumo"`
	BUMO      int `json:"bumo"`
}

type Snapshot struct {
	Aware     int        `json:"aware"`
	NotAware  int        `json:"notAware"`
	Triers    int        `json:"triers"`
	NonTriers int        `json:"nonTriers"`
	Current   int        `json:"current"`
	Lapsers   int        `json:"lapsers"`
	BUMO      int        `json:"bumo"`
	NonBUMO   int        `json:"nonBumo"`
	NPS       SegmentNPS `json:"nps"`
}

// UsageSnapshot splits the population along aware, tried, current and main bank, with the
// NPS of every sub-population.
func UsageSnapshot(subset []types.SurveyResponse, bankID string) Snapshot {
	total := len(subset)
	aware := countContaining(subset, types.FIELD_AWARE_BANKS, bankID)
	triers := countContaining(subset, types.FIELD_EVER_USED, bankID)
	current := countContaining(subset, types.FIELD_CURRENTLY_USING, bankID)

	nonTriers := selectMatching(subset, func(a types.Answers) bool {
		return a.Contains(types.FIELD_AWARE_BANKS, bankID) && !a.Contains(types.FIELD_EVER_USED, bankID)
	})
	lapsers := selectMatching(subset, func(a types.Answers) bool {
		return a.Contains(types.FIELD_EVER_USED, bankID) && !a.Contains(types.FIELD_CURRENTLY_USING, bankID)
	})
	nonBUMO := selectMatching(subset, func(a types.Answers) bool {
		return a.Contains(types.FIELD_CURRENTLY_USING, bankID) && a.String(types.FIELD_MAIN_BANK) != bankID
	})
	bumo := selectMatching(subset, func(a types.Answers) bool {
		return a.String(types.FIELD_MAIN_BANK) == bankID
	})

	return Snapshot{
		Aware:     roundHalfUp(percent(aware, total)),
		NotAware:  roundHalfUp(percent(total-aware, total)),
		Triers:    roundHalfUp(percent(triers, total)),
		NonTriers: roundHalfUp(percent(len(nonTriers), total)),
		Current:   roundHalfUp(percent(current, total)),
		Lapsers:   roundHalfUp(percent(len(lapsers), total)),
		BUMO:      roundHalfUp(percent(len(bumo), total)),
		NonBUMO:   roundHalfUp(percent(len(nonBUMO), total)),
		NPS: SegmentNPS{
			NonTriers: NetPromoterScore(nonTriers, bankID),
			Lapsers:   NetPromoterScore(lapsers, bankID),
			NonBUMO:   NetPromoterScore(nonBUMO, bankID),
			BUMO:      NetPromoterScore(bumo, bankID),
		},
	}
}
