package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	SEED_DEVICE_ID        = "seed_device"
	SEED_RESPONSE_PREFIX  = "seed_"
	DEFAULT_SEED_COUNT    = 600 // 200 per country
	seedDurationSeconds   = 150
	seedSpreadDays        = 180
	DEFAULT_RANDOM_SOURCE = 42
)

var (
	seedAgeGroups       = []string{"18-24", "25-34", "35-44", "45-54", "55+"}
	seedEmploymentTypes = []string{"full_time", "part_time", "self_employed", "student"}
	seedEducationLevels = []string{"secondary", "primary", "university", "postgraduate"}
)

type Options struct {
	Count int
	// RandomSource makes the generated awareness lists and ratings reproducible.
	RandomSource int64
	Now          time.Time
}

// Seed fills an empty response store with sample responses in one batch, so a failed seed
// leaves the store empty and can be retried. A store that already holds any response is left
// untouched; the number of written responses is returned.
func Seed(ctx context.Context, responses store.ResponseStore, banks types.BankCatalogue, opts Options) (int, error) {
	existing, err := responses.CountResponses(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting responses: %w", err)
	}
	if existing > 0 {
		slog.Info("response store not empty, skipping seed", slog.Int64("count", existing))
		return 0, nil
	}

	if opts.Count <= 0 {
		opts.Count = DEFAULT_SEED_COUNT
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rnd := rand.New(rand.NewSource(opts.RandomSource))

	if err := responses.AddResponses(ctx, GenerateResponses(banks, opts.Count, rnd, opts.Now)); err != nil {
		return 0, fmt.Errorf("adding seed responses: %w", err)
	}
	slog.Info("seeded sample responses", slog.Int("count", opts.Count))
	return opts.Count, nil
}

// GenerateResponses builds completed responses cycling through the supported countries.
// Each respondent knows the first two banks of the country plus a random one and uses the first.
func GenerateResponses(banks types.BankCatalogue, count int, rnd *rand.Rand, now time.Time) []types.SurveyResponse {
	generated := make([]types.SurveyResponse, 0, count)
	for i := 0; i < count; i++ {
		country := types.SUPPORTED_COUNTRIES[i%len(types.SUPPORTED_COUNTRIES)]
		countryBanks := banks.ByCountry(country)

		answers := types.Answers{
			types.FIELD_COUNTRY:   country,
			types.FIELD_CONSENT:   "yes",
			"b1_recency":          "this_week",
			types.FIELD_AGE_GROUP: seedAgeGroups[i%len(seedAgeGroups)],
			"e1_employment":       seedEmploymentTypes[i%len(seedEmploymentTypes)],
			"e2_education":        seedEducationLevels[i%len(seedEducationLevels)],
			types.FIELD_GENDER:    seedGender(i),
		}

		if len(countryBanks) > 0 {
			first := countryBanks[0]
			aware := []string{first.ID}
			if len(countryBanks) > 1 {
				aware = append(aware, countryBanks[1].ID)
			}
			aware = append(aware, countryBanks[rnd.Intn(len(countryBanks))].ID)

			answers[types.FIELD_TOP_OF_MIND] = first.Name
			answers[types.FIELD_AWARE_BANKS] = aware
			answers[types.FIELD_EVER_USED] = []string{first.ID}
			answers[types.FIELD_CURRENTLY_USING] = []string{first.ID}
			answers[types.FIELD_MAIN_BANK] = first.ID
			answers[types.FIELD_RECOMMENDATION] = map[string]float64{first.ID: float64(rnd.Intn(11))}
		}

		submittedAt := now.Add(-time.Duration(i%seedSpreadDays) * 24 * time.Hour)
		generated = append(generated, types.SurveyResponse{
			ID:                   fmt.Sprintf("%s%d", SEED_RESPONSE_PREFIX, i),
			DeviceID:             SEED_DEVICE_ID,
			Country:              country,
			SubmittedAt:          submittedAt.Unix(),
			DurationSeconds:      seedDurationSeconds,
			QuestionTimings:      map[string]float64{},
			LanguageAtSubmission: types.LANGUAGE_EN,
			Status:               types.RESPONSE_STATUS_COMPLETED,
			Answers:              answers,
		})
	}
	return generated
}

func seedGender(i int) string {
	if i%2 == 0 {
		return "male"
	}
	return "female"
}
