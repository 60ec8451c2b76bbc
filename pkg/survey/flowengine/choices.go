package flowengine

import "github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"

var extraChoices = []types.Choice{
	{Value: types.CHOICE_VALUE_NONE, Label: types.Localized{"en": "None", "rw": "Ntayo", "fr": "Aucune"}},
	{Value: types.CHOICE_VALUE_DONT_KNOW, Label: types.Localized{"en": "Don't Know", "rw": "Simbizi", "fr": "Je ne sais pas"}},
}

// ResolveChoices returns the option list of a question for the current answers.
// Dynamic sources with missing upstream answers resolve to an empty list.
func ResolveChoices(q types.Question, answers types.Answers, banks types.BankCatalogue) []types.Choice {
	switch q.ChoiceSource {
	case "", types.CHOICE_SOURCE_STATIC:
		if q.Choices == nil {
			return []types.Choice{}
		}
		return q.Choices
	case types.CHOICE_SOURCE_COUNTRY_BANKS:
		return countryBanks(answers, banks)
	case types.CHOICE_SOURCE_COUNTRY_BANKS_WITH_EXTRAS:
		return countryBanksWithExtras(answers, banks)
	case types.CHOICE_SOURCE_AWARE_BANKS:
		return selectedCountryBanks(answers, banks, types.FIELD_AWARE_BANKS)
	case types.CHOICE_SOURCE_USED_BANKS:
		return selectedCountryBanks(answers, banks, types.FIELD_EVER_USED)
	case types.CHOICE_SOURCE_CURRENT_BANKS:
		return selectedCountryBanks(answers, banks, types.FIELD_CURRENTLY_USING)
	}
	return []types.Choice{}
}

func bankChoices(banks types.BankCatalogue) []types.Choice {
	choices := make([]types.Choice, 0, len(banks))
	for _, b := range banks {
		choices = append(choices, types.Choice{
			Value: b.ID,
			Label: types.Localized{
				types.LANGUAGE_EN: b.Name,
				types.LANGUAGE_RW: b.Name,
				types.LANGUAGE_FR: b.Name,
			},
		})
	}
	return choices
}

func countryBanks(answers types.Answers, banks types.BankCatalogue) []types.Choice {
	return bankChoices(banks.ByCountry(answers.String(types.FIELD_COUNTRY)))
}

func countryBanksWithExtras(answers types.Answers, banks types.BankCatalogue) []types.Choice {
	return append(countryBanks(answers, banks), extraChoices...)
}

// selectedCountryBanks keeps the banks of the selected country that were picked in an earlier
// multi-choice answer, in catalogue order.
func selectedCountryBanks(answers types.Answers, banks types.BankCatalogue, field string) []types.Choice {
	country := answers.String(types.FIELD_COUNTRY)
	if country == "" || !answers.Has(field) {
		return []types.Choice{}
	}
	selected := map[string]bool{}
	for _, id := range answers.Strings(field) {
		selected[id] = true
	}
	filtered := types.BankCatalogue{}
	for _, b := range banks.ByCountry(country) {
		if selected[b.ID] {
			filtered = append(filtered, b)
		}
	}
	return bankChoices(filtered)
}
