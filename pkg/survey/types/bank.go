package types

import "strings"

const (
	COUNTRY_RWANDA  = "rwanda"
	COUNTRY_UGANDA  = "uganda"
	COUNTRY_BURUNDI = "burundi"
)

var SUPPORTED_COUNTRIES = []string{COUNTRY_RWANDA, COUNTRY_UGANDA, COUNTRY_BURUNDI}

type Bank struct {
	ID      string   `yaml:"id" json:"id" bson:"id"`
	Name    string   `yaml:"name" json:"name" bson:"name"`
	Country string   `yaml:"country" json:"country" bson:"country"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty" bson:"aliases,omitempty"`
}

// BankCatalogue is the ordered list of banks known to the survey.
type BankCatalogue []Bank

func (c BankCatalogue) ByCountry(country string) BankCatalogue {
	banks := BankCatalogue{}
	if country == "" {
		return banks
	}
	for _, b := range c {
		if b.Country == country {
			banks = append(banks, b)
		}
	}
	return banks
}

// InScope returns the banks of country, or every bank when country is empty.
func (c BankCatalogue) InScope(country string) BankCatalogue {
	if country == "" {
		return c
	}
	return c.ByCountry(country)
}

func (c BankCatalogue) ByID(id string) (Bank, bool) {
	for _, b := range c {
		if b.ID == id {
			return b, true
		}
	}
	return Bank{}, false
}

func (c BankCatalogue) IDs() []string {
	ids := make([]string, len(c))
	for i, b := range c {
		ids[i] = b.ID
	}
	return ids
}

// MatchesName reports whether a free-text mention refers to the bank. Name and aliases are
// compared case-insensitively as substrings in either direction. Blank input never matches.
func (b Bank) MatchesName(input string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return false
	}
	names := append([]string{b.Name}, b.Aliases...)
	for _, n := range names {
		name := strings.ToLower(strings.TrimSpace(n))
		if name == "" {
			continue
		}
		if strings.Contains(name, in) || strings.Contains(in, name) {
			return true
		}
	}
	return false
}

// MatchName returns the first bank matching a free-text mention.
func (c BankCatalogue) MatchName(input string) (Bank, bool) {
	for _, b := range c {
		if b.MatchesName(input) {
			return b, true
		}
	}
	return Bank{}, false
}
