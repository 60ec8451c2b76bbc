package metrics

import (
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

var testBanks = types.BankCatalogue{
	{ID: "BK_RW", Name: "BK", Country: "rwanda", Aliases: []string{"Bank of Kigali"}},
	{ID: "EQU_RW", Name: "Equity", Country: "rwanda"},
	{ID: "KCB_RW", Name: "KCB", Country: "rwanda"},
	{ID: "IBB_BI", Name: "Interbank (IBB)", Country: "burundi", Aliases: []string{"IBB"}},
}

func response(country string, daysAgo int, answers types.Answers) types.SurveyResponse {
	a := types.Answers{types.FIELD_COUNTRY: country}
	for k, v := range answers {
		a[k] = v
	}
	return types.SurveyResponse{
		ID:          "r",
		Country:     country,
		SubmittedAt: testNow.AddDate(0, 0, -daysAgo).Unix(),
		Status:      types.RESPONSE_STATUS_COMPLETED,
		Answers:     a,
	}
}

func npsAnswer(bankID string, rating float64) types.Answers {
	return types.Answers{types.FIELD_RECOMMENDATION: map[string]float64{bankID: rating}}
}
