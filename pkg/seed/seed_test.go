package seed

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

var testBanks = types.BankCatalogue{
	{ID: "BK_RW", Name: "BK", Country: "rwanda"},
	{ID: "EQU_RW", Name: "Equity", Country: "rwanda"},
	{ID: "STB_UG", Name: "Stanbic", Country: "uganda"},
	{ID: "CEN_UG", Name: "Centenary", Country: "uganda"},
	{ID: "BCB_BI", Name: "BCB", Country: "burundi"},
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("fills empty store", func(t *testing.T) {
		s := store.NewMemoryResponseStore()
		n, err := Seed(ctx, s, testBanks, Options{Now: testNow})
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if n != DEFAULT_SEED_COUNT {
			t.Errorf("unexpected count: %d", n)
		}

		all, _ := s.GetResponses(ctx)
		perCountry := map[string]int{}
		for _, r := range all {
			perCountry[r.Country]++
		}
		for _, c := range types.SUPPORTED_COUNTRIES {
			if perCountry[c] != 200 {
				t.Errorf("unexpected count for %s: %d", c, perCountry[c])
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := store.NewMemoryResponseStore()
		_, _ = Seed(ctx, s, testBanks, Options{Count: 30, Now: testNow})
		n, err := Seed(ctx, s, testBanks, Options{Count: 30, Now: testNow})
		if err != nil || n != 0 {
			t.Errorf("unexpected second seed: %d, %v", n, err)
		}
		total, _ := s.CountResponses(ctx)
		if total != 30 {
			t.Errorf("unexpected total: %d", total)
		}
	})

	t.Run("failed seed can be retried", func(t *testing.T) {
		s := &failingBatchStore{MemoryResponseStore: store.NewMemoryResponseStore(), failures: 1}
		if _, err := Seed(ctx, s, testBanks, Options{Count: 30, Now: testNow}); err == nil {
			t.Fatal("expected error")
		}
		if total, _ := s.CountResponses(ctx); total != 0 {
			t.Errorf("unexpected total after failed seed: %d", total)
		}

		n, err := Seed(ctx, s, testBanks, Options{Count: 30, Now: testNow})
		if err != nil || n != 30 {
			t.Errorf("unexpected retry: %d, %v", n, err)
		}
		if total, _ := s.CountResponses(ctx); total != 30 {
			t.Errorf("unexpected total: %d", total)
		}
	})

	t.Run("skips non-empty store", func(t *testing.T) {
		s := store.NewMemoryResponseStore()
		_ = s.AddResponse(ctx, types.SurveyResponse{ID: "real"})
		n, _ := Seed(ctx, s, testBanks, Options{Now: testNow})
		if n != 0 {
			t.Errorf("unexpected count: %d", n)
		}
	})
}

func TestGenerateResponses(t *testing.T) {
	a := GenerateResponses(testBanks, 9, rand.New(rand.NewSource(1)), testNow)
	b := GenerateResponses(testBanks, 9, rand.New(rand.NewSource(1)), testNow)

	for i := range a {
		if a[i].ID != b[i].ID || a[i].Answers.Ratings(types.FIELD_RECOMMENDATION)[a[i].Answers.String(types.FIELD_MAIN_BANK)] !=
			b[i].Answers.Ratings(types.FIELD_RECOMMENDATION)[b[i].Answers.String(types.FIELD_MAIN_BANK)] {
			t.Errorf("generation not reproducible at %d", i)
		}
	}

	r := a[1]
	if r.Country != "uganda" || r.Answers.String(types.FIELD_TOP_OF_MIND) != "Stanbic" {
		t.Errorf("unexpected response: %+v", r)
	}
	aware := r.Answers.Strings(types.FIELD_AWARE_BANKS)
	if len(aware) != 3 || aware[0] != "STB_UG" || aware[1] != "CEN_UG" {
		t.Errorf("unexpected awareness: %v", aware)
	}
	if r.Answers.String(types.FIELD_GENDER) != "female" || r.Answers.String(types.FIELD_AGE_GROUP) != "25-34" {
		t.Errorf("unexpected demographics: %v", r.Answers)
	}

	// burundi has a single bank in the fixture
	bi := a[2]
	if n := len(bi.Answers.Strings(types.FIELD_AWARE_BANKS)); n != 2 {
		t.Errorf("unexpected awareness size: %d", n)
	}
	nps, ok := bi.Answers.Ratings(types.FIELD_RECOMMENDATION)["BCB_BI"]
	if !ok || nps < 0 || nps > 10 {
		t.Errorf("unexpected nps: %v", bi.Answers[types.FIELD_RECOMMENDATION])
	}
	if a[3].SubmittedAt != testNow.Add(-3*24*time.Hour).Unix() {
		t.Errorf("unexpected submittedAt: %d", a[3].SubmittedAt)
	}
}

// failingBatchStore rejects the first batch appends.
type failingBatchStore struct {
	*store.MemoryResponseStore
	failures int
}

func (s *failingBatchStore) AddResponses(ctx context.Context, responses []types.SurveyResponse) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("write failed")
	}
	return s.MemoryResponseStore.AddResponses(ctx, responses)
}
