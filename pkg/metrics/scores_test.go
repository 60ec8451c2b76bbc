package metrics

import (
	"math"
	"testing"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

func TestEmptyDataGivesZeros(t *testing.T) {
	empty := []types.SurveyResponse{}
	bank := testBanks[0]

	if v := TopOfMindScore(empty, bank); v != 0 {
		t.Errorf("unexpected top of mind: %v", v)
	}
	if v := AwarenessScore(empty, bank.ID); v != 0 {
		t.Errorf("unexpected awareness: %v", v)
	}
	if v := NetPromoterScore(empty, bank.ID); v != 0 {
		t.Errorf("unexpected nps: %v", v)
	}
	if f := MomentumFunnel(empty, bank.ID); f != (Funnel{}) || math.IsNaN(f.Score) {
		t.Errorf("unexpected funnel: %+v", f)
	}
	if l := LoyaltySegments(empty, bank.ID); l != (Loyalty{}) {
		t.Errorf("unexpected loyalty: %+v", l)
	}
	if s := UsageSnapshot(empty, bank.ID); s != (Snapshot{}) {
		t.Errorf("unexpected snapshot: %+v", s)
	}

	d := ComputeDashboardMetrics(empty, bank.ID, testBanks, FilterCriteria{TimePeriod: TIME_PERIOD_30_DAYS}, testNow)
	if d.SampleSize != 0 || d.Metrics.TopOfMind.Value != 0 || d.Metrics.AwarenessQuality.Value != 0 || d.Metrics.NPS.Value != 0 {
		t.Errorf("unexpected dashboard metrics: %+v", d)
	}
	if d.Metrics.Snapshot.NotAware != 0 || d.Metrics.Loyalty.Accessibles != 0 {
		t.Errorf("unexpected dashboard metrics: %+v", d)
	}
}

func TestTopOfMindScore(t *testing.T) {
	t.Run("all respondents name the bank", func(t *testing.T) {
		subset := []types.SurveyResponse{
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: "BK"}),
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: "bk"}),
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: " BK "}),
		}
		if v := TopOfMindScore(subset, testBanks[0]); v != 100 {
			t.Errorf("unexpected score: %v", v)
		}
	})

	t.Run("lenient matching", func(t *testing.T) {
		subset := []types.SurveyResponse{
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: "bank of kigali ltd"}),
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: "Equity Bank"}),
			response("rwanda", 1, types.Answers{types.FIELD_TOP_OF_MIND: ""}),
			response("rwanda", 1, types.Answers{}),
		}
		if v := TopOfMindScore(subset, testBanks[0]); v != 25 {
			t.Errorf("unexpected score for BK: %v", v)
		}
		if v := TopOfMindScore(subset, testBanks[1]); v != 25 {
			t.Errorf("unexpected score for Equity: %v", v)
		}
	})
}

func TestNetPromoterScore(t *testing.T) {
	t.Run("one promoter one detractor", func(t *testing.T) {
		subset := []types.SurveyResponse{
			response("rwanda", 1, npsAnswer("BK_RW", 9)),
			response("rwanda", 1, npsAnswer("BK_RW", 5)),
		}
		if v := NetPromoterScore(subset, "BK_RW"); v != 0 {
			t.Errorf("unexpected nps: %d", v)
		}
	})

	t.Run("zero is a detractor rating", func(t *testing.T) {
		subset := []types.SurveyResponse{response("rwanda", 1, npsAnswer("BK_RW", 0))}
		if v := NetPromoterScore(subset, "BK_RW"); v != -100 {
			t.Errorf("unexpected nps: %d", v)
		}
	})

	t.Run("bounds", func(t *testing.T) {
		for rating := 0.0; rating <= 10; rating++ {
			for n := 1; n <= 3; n++ {
				subset := []types.SurveyResponse{}
				for i := 0; i < n; i++ {
					subset = append(subset, response("rwanda", 1, npsAnswer("BK_RW", rating)))
				}
				subset = append(subset, response("rwanda", 1, npsAnswer("BK_RW", 10-rating)))
				v := NetPromoterScore(subset, "BK_RW")
				if v < -100 || v > 100 {
					t.Errorf("nps out of bounds: %d", v)
				}
			}
		}
	})

	t.Run("breakdown", func(t *testing.T) {
		subset := []types.SurveyResponse{
			response("rwanda", 1, npsAnswer("BK_RW", 10)),
			response("rwanda", 1, npsAnswer("BK_RW", 8)),
			response("rwanda", 1, npsAnswer("BK_RW", 3)),
			response("rwanda", 1, npsAnswer("BK_RW", 9)),
			response("rwanda", 1, npsAnswer("EQU_RW", 2)),
			response("rwanda", 1, types.Answers{}),
		}
		b := NetPromoterBreakdown(subset, "BK_RW")
		expected := NPSBreakdown{Score: 25, Promoters: 50, Passives: 25, Detractors: 25, Rated: 4}
		if b != expected {
			t.Errorf("unexpected breakdown: %+v", b)
		}
	})

	t.Run("ratings out of range are ignored", func(t *testing.T) {
		subset := []types.SurveyResponse{
			response("rwanda", 1, npsAnswer("BK_RW", 11)),
			response("rwanda", 1, npsAnswer("BK_RW", 10)),
		}
		if v := NetPromoterScore(subset, "BK_RW"); v != 100 {
			t.Errorf("unexpected nps: %d", v)
		}
	})
}

func TestMomentumFunnel(t *testing.T) {
	subset := []types.SurveyResponse{
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:     []string{"BK_RW"},
			types.FIELD_EVER_USED:       []string{"BK_RW"},
			types.FIELD_CURRENTLY_USING: []string{"BK_RW"},
			types.FIELD_MAIN_BANK:       "BK_RW",
			types.FIELD_WOULD_CONSIDER:  []string{"BK_RW"},
		}),
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS: []string{"BK_RW"},
			types.FIELD_EVER_USED:   []string{"BK_RW"},
		}),
		response("rwanda", 1, types.Answers{types.FIELD_AWARE_BANKS: []string{"BK_RW"}}),
		response("rwanda", 1, types.Answers{types.FIELD_AWARE_BANKS: []string{"EQU_RW"}}),
	}

	f := MomentumFunnel(subset, "BK_RW")
	if f.Awareness != 75 || f.EverUsed != 50 || f.Current != 25 || f.Preferred != 25 || f.Consideration != 25 {
		t.Errorf("unexpected funnel stages: %+v", f)
	}
	if f.Conversion != 67 || f.Retention != 50 || f.Adoption != 100 {
		t.Errorf("unexpected funnel rates: %+v", f)
	}
	if f.RoundedScore() != 72 {
		t.Errorf("unexpected momentum: %d", f.RoundedScore())
	}

	t.Run("no aware respondents", func(t *testing.T) {
		f := MomentumFunnel(subset, "KCB_RW")
		if f.Conversion != 0 || f.Retention != 0 || f.Adoption != 0 || f.Score != 0 {
			t.Errorf("unexpected funnel: %+v", f)
		}
	})
}

func TestLoyaltySegments(t *testing.T) {
	subset := []types.SurveyResponse{
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:    []string{"BK_RW"},
			types.FIELD_COMMITTED:      "BK_RW",
			types.FIELD_FAVOURITES:     []string{"BK_RW"},
			types.FIELD_WOULD_CONSIDER: []string{"BK_RW"},
		}),
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:       []string{"BK_RW"},
			types.FIELD_FAVOURITES:        []string{"BK_RW"},
			types.FIELD_INTERESTED_UNSURE: []string{"BK_RW"},
			types.FIELD_NEVER_CONSIDER:    []string{"EQU_RW"},
		}),
		response("rwanda", 1, types.Answers{
			types.FIELD_NEVER_CONSIDER: []string{"BK_RW"},
		}),
		response("rwanda", 1, types.Answers{}),
	}

	l := LoyaltySegments(subset, "BK_RW")
	expected := Loyalty{Committed: 25, Favors: 50, Potential: 50, Rejectors: 25, Accessibles: 50}
	if l != expected {
		t.Errorf("unexpected loyalty: %+v", l)
	}

	for _, v := range []int{l.Committed, l.Favors, l.Potential, l.Rejectors, l.Accessibles} {
		if v < 0 || v > 100 {
			t.Errorf("segment out of bounds: %d", v)
		}
	}
	if sum := l.Committed + l.Favors + l.Potential + l.Rejectors + l.Accessibles; sum == 100 {
		t.Errorf("segments are independent lenses, got a partition: %d", sum)
	}
}

func TestUsageSnapshot(t *testing.T) {
	subset := []types.SurveyResponse{
		// bumo promoter
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:     []string{"BK_RW"},
			types.FIELD_EVER_USED:       []string{"BK_RW"},
			types.FIELD_CURRENTLY_USING: []string{"BK_RW"},
			types.FIELD_MAIN_BANK:       "BK_RW",
			types.FIELD_RECOMMENDATION:  map[string]float64{"BK_RW": 10},
		}),
		// current user, other main bank, detractor
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:     []string{"BK_RW", "EQU_RW"},
			types.FIELD_EVER_USED:       []string{"BK_RW", "EQU_RW"},
			types.FIELD_CURRENTLY_USING: []string{"BK_RW", "EQU_RW"},
			types.FIELD_MAIN_BANK:       "EQU_RW",
			types.FIELD_RECOMMENDATION:  map[string]float64{"BK_RW": 4},
		}),
		// lapser
		response("rwanda", 1, types.Answers{
			types.FIELD_AWARE_BANKS:    []string{"BK_RW"},
			types.FIELD_EVER_USED:      []string{"BK_RW"},
			types.FIELD_RECOMMENDATION: map[string]float64{"BK_RW": 7},
		}),
		// non trier
		response("rwanda", 1, types.Answers{types.FIELD_AWARE_BANKS: []string{"BK_RW"}}),
	}

	s := UsageSnapshot(subset, "BK_RW")
	expected := Snapshot{
		Aware: 100, NotAware: 0, Triers: 75, NonTriers: 25, Current: 50, Lapsers: 25, BUMO: 25, NonBUMO: 25,
		NPS: SegmentNPS{NonTriers: 0, Lapsers: 0, NonBUMO: -100, BUMO: 100},
	}
	if s != expected {
		t.Errorf("unexpected snapshot: %+v", s)
	}
}
