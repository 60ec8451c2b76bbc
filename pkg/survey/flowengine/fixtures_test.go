package flowengine

import "github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"

var testBanks = types.BankCatalogue{
	{ID: "BK_RW", Name: "BK", Country: "rwanda", Aliases: []string{"Bank of Kigali"}},
	{ID: "EQU_RW", Name: "Equity", Country: "rwanda", Aliases: []string{"Equity Bank"}},
	{ID: "KCB_RW", Name: "KCB", Country: "rwanda"},
	{ID: "STB_UG", Name: "Stanbic", Country: "uganda"},
}

func en(s string) types.Localized {
	return types.Localized{"en": s}
}

func testDefinition() types.SurveyDefinition {
	return types.SurveyDefinition{
		Key: "test",
		Questions: []types.Question{
			{
				ID: "selected_country", Type: types.QUESTION_TYPE_SINGLE_CHOICE, Required: true,
				Choices: []types.Choice{{Value: "rwanda", Label: en("Rwanda")}, {Value: "uganda", Label: en("Uganda")}},
			},
			{
				ID: "consent", Type: types.QUESTION_TYPE_SINGLE_CHOICE, Required: true,
				Choices: []types.Choice{{Value: "yes", Label: en("Yes")}, {Value: "no", Label: en("No")}},
			},
			{
				ID: "termination_consent", Type: types.QUESTION_TYPE_NOTE, IsTerminationPoint: true,
				Condition: &types.Expression{Name: "eq", Field: "consent", Value: "no"},
			},
			{
				ID: "c3_aware_banks", Type: types.QUESTION_TYPE_MULTI_CHOICE, Required: true,
				ChoiceSource: types.CHOICE_SOURCE_COUNTRY_BANKS,
				Condition:    &types.Expression{Name: "eq", Field: "consent", Value: "yes"},
			},
			{
				ID: "c4_ever_used", Type: types.QUESTION_TYPE_MULTI_CHOICE, Required: true,
				ChoiceSource: types.CHOICE_SOURCE_AWARE_BANKS,
				Condition:    &types.Expression{Name: "hasValue", Field: "c3_aware_banks"},
			},
			{
				ID: "d11_nps", Type: types.QUESTION_TYPE_RATING_MATRIX, Required: true,
				ChoiceSource: types.CHOICE_SOURCE_USED_BANKS,
				Condition:    &types.Expression{Name: "hasValue", Field: "c4_ever_used"},
			},
			{
				ID: "satisfaction", Type: types.QUESTION_TYPE_RATING_SCALE, Required: true,
				Condition: &types.Expression{Name: "eq", Field: "consent", Value: "yes"},
			},
			{
				ID: "c1_top_of_mind", Type: types.QUESTION_TYPE_FREE_TEXT,
				Condition: &types.Expression{Name: "eq", Field: "consent", Value: "yes"},
				Validation: []types.ValidationRule{
					{Type: types.VALIDATION_RULE_BANK_NAME, Message: types.Localized{"en": "Unknown bank", "fr": "Banque inconnue"}},
				},
			},
			{
				ID: "comment", Type: types.QUESTION_TYPE_FREE_TEXT,
				Condition: &types.Expression{Name: "eq", Field: "consent", Value: "yes"},
				Validation: []types.ValidationRule{
					{Type: types.VALIDATION_RULE_MIN_LENGTH, Min: 5},
				},
			},
			{ID: "thank_you", Type: types.QUESTION_TYPE_NOTE},
		},
	}
}

func questionIDs(qs []types.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
