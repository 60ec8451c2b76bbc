package metrics

import (
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

type RankedMetric struct {
	Value  int `json:"value"`
	Rank   int `json:"rank"`
	Change int `json:"change"`
}

type NPSMetric struct {
	RankedMetric
	Promoters  int `json:"p"`
	Passives   int `json:"pass"`
	Detractors int `json:"d"`
}

type MomentumMetric struct {
	RankedMetric
	Funnel
}

type AwarenessQuality struct {
	Value int `json:"value"`
}

type BankMetrics struct {
	TopOfMind        RankedMetric     `json:"topOfMind"`
	TotalAwareness   RankedMetric     `json:"totalAwareness"`
	AwarenessQuality AwarenessQuality `json:"awarenessQuality"`
	NPS              NPSMetric        `json:"nps"`
	Momentum         MomentumMetric   `json:"momentum"`
	Consideration    RankedMetric     `json:"consideration"`
	Loyalty          Loyalty          `json:"loyalty"`
	Snapshot         Snapshot         `json:"snapshot"`
}

type DashboardMetrics struct {
	BankID     string      `json:"bank_id"`
	Metrics    BankMetrics `json:"metrics"`
	SampleSize int         `json:"sampleSize"`
	Timestamp  string      `json:"timestamp"`
}

// scoreboard holds the unrounded rankable scores of every bank in scope.
type scoreboard struct {
	topOfMind     map[string]float64
	awareness     map[string]float64
	nps           map[string]float64
	momentum      map[string]float64
	consideration map[string]float64
}

func newScoreboard(subset []types.SurveyResponse, banks types.BankCatalogue) scoreboard {
	sb := scoreboard{
		topOfMind:     map[string]float64{},
		awareness:     map[string]float64{},
		nps:           map[string]float64{},
		momentum:      map[string]float64{},
		consideration: map[string]float64{},
	}
	for _, b := range banks {
		sb.topOfMind[b.ID] = TopOfMindScore(subset, b)
		sb.awareness[b.ID] = AwarenessScore(subset, b.ID)
		sb.nps[b.ID] = float64(NetPromoterScore(subset, b.ID))
		sb.momentum[b.ID] = MomentumFunnel(subset, b.ID).Score
		sb.consideration[b.ID] = ConsiderationScore(subset, b.ID)
	}
	return sb
}

// ComputeDashboardMetrics aggregates every KPI of one bank over the filtered collection.
// Ranks are taken over the banks of the criteria's country, or all banks without one.
// Change compares with the preceding window of equal length and is 0 without a time period.
func ComputeDashboardMetrics(all []types.SurveyResponse, bankID string, banks types.BankCatalogue, criteria FilterCriteria, now time.Time) DashboardMetrics {
	subset := FilterResponses(all, criteria, now)
	inScope := banks.InScope(criteria.Country)
	sb := newScoreboard(subset, inScope)

	bank, ok := banks.ByID(bankID)
	if !ok {
		bank = types.Bank{ID: bankID}
	}

	tom := TopOfMindScore(subset, bank)
	aware := AwarenessScore(subset, bankID)
	nps := NetPromoterBreakdown(subset, bankID)
	funnel := MomentumFunnel(subset, bankID)
	consideration := ConsiderationScore(subset, bankID)

	m := BankMetrics{
		TopOfMind: RankedMetric{
			Value: roundHalfUp(tom),
			Rank:  Rank(sb.topOfMind, bankID),
		},
		TotalAwareness: RankedMetric{
			Value: roundHalfUp(aware),
			Rank:  Rank(sb.awareness, bankID),
		},
		AwarenessQuality: AwarenessQuality{Value: roundHalfUp(ratio(tom, aware))},
		NPS: NPSMetric{
			RankedMetric: RankedMetric{Value: nps.Score, Rank: Rank(sb.nps, bankID)},
			Promoters:    nps.Promoters,
			Passives:     nps.Passives,
			Detractors:   nps.Detractors,
		},
		Momentum: MomentumMetric{
			RankedMetric: RankedMetric{Value: funnel.RoundedScore(), Rank: Rank(sb.momentum, bankID)},
			Funnel:       funnel,
		},
		Consideration: RankedMetric{
			Value: roundHalfUp(consideration),
			Rank:  Rank(sb.consideration, bankID),
		},
		Loyalty:  LoyaltySegments(subset, bankID),
		Snapshot: UsageSnapshot(subset, bankID),
	}

	if prev, ok := previousWindow(all, criteria, now); ok {
		m.TopOfMind.Change = m.TopOfMind.Value - roundHalfUp(TopOfMindScore(prev, bank))
		m.TotalAwareness.Change = m.TotalAwareness.Value - roundHalfUp(AwarenessScore(prev, bankID))
		m.NPS.Change = m.NPS.Value - NetPromoterScore(prev, bankID)
		m.Momentum.Change = m.Momentum.RankedMetric.Value - MomentumFunnel(prev, bankID).RoundedScore()
		m.Consideration.Change = m.Consideration.Value - roundHalfUp(ConsiderationScore(prev, bankID))
	}

	return DashboardMetrics{
		BankID:     bankID,
		Metrics:    m,
		SampleSize: len(subset),
		Timestamp:  now.UTC().Format(time.RFC3339),
	}
}
