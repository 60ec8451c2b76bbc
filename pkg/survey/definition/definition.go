package definition

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/flowengine"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
	"gopkg.in/yaml.v2"
)

//go:embed questions.yaml
var defaultQuestions []byte

//go:embed banks.yaml
var defaultBanks []byte

type bankFile struct {
	Banks types.BankCatalogue `yaml:"banks"`
}

// Default returns the embedded survey definition.
func Default() (types.SurveyDefinition, error) {
	return ParseDefinition(defaultQuestions)
}

// DefaultBanks returns the embedded bank catalogue.
func DefaultBanks() (types.BankCatalogue, error) {
	return ParseBanks(defaultBanks)
}

// Load reads the definition from path, or returns the embedded one when path is empty.
func Load(path string) (types.SurveyDefinition, error) {
	if path == "" {
		return Default()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return types.SurveyDefinition{}, fmt.Errorf("reading survey definition: %w", err)
	}
	return ParseDefinition(content)
}

// LoadBanks reads the bank catalogue from path, or returns the embedded one when path is empty.
func LoadBanks(path string) (types.BankCatalogue, error) {
	if path == "" {
		return DefaultBanks()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank catalogue: %w", err)
	}
	return ParseBanks(content)
}

func ParseDefinition(content []byte) (types.SurveyDefinition, error) {
	def := types.SurveyDefinition{}
	if err := yaml.UnmarshalStrict(content, &def); err != nil {
		return def, fmt.Errorf("parsing survey definition: %w", err)
	}
	if err := Validate(def); err != nil {
		return def, err
	}
	return def, nil
}

func ParseBanks(content []byte) (types.BankCatalogue, error) {
	f := bankFile{}
	if err := yaml.UnmarshalStrict(content, &f); err != nil {
		return nil, fmt.Errorf("parsing bank catalogue: %w", err)
	}
	if err := ValidateBanks(f.Banks); err != nil {
		return nil, err
	}
	return f.Banks, nil
}

// Validate checks an authored definition: unique ids, known types and choice sources,
// well formed conditions, and conditions or choice sources reading only earlier questions.
func Validate(def types.SurveyDefinition) error {
	if len(def.Questions) == 0 {
		return errors.New("survey definition has no questions")
	}

	seen := map[string]bool{}
	for i, q := range def.Questions {
		if q.ID == "" {
			return fmt.Errorf("question at position %d has no id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id: %s", q.ID)
		}
		if !isKnownQuestionType(q.Type) {
			return fmt.Errorf("question %s: unknown type %s", q.ID, q.Type)
		}
		if !q.ChoiceSource.IsKnown() {
			return fmt.Errorf("question %s: unknown choice source %s", q.ID, q.ChoiceSource)
		}
		if q.HasDynamicChoices() && len(q.Choices) > 0 {
			return fmt.Errorf("question %s: static choices and choice source are exclusive", q.ID)
		}
		if q.Type == types.QUESTION_TYPE_RATING_MATRIX && !q.HasDynamicChoices() && len(q.Choices) == 0 {
			return fmt.Errorf("question %s: rating matrix needs choices", q.ID)
		}
		if q.IsTerminationPoint && q.Type != types.QUESTION_TYPE_NOTE {
			return fmt.Errorf("question %s: only notes can be termination points", q.ID)
		}

		if q.HasDynamicChoices() {
			for _, field := range q.ChoiceSource.DependsOn() {
				if !seen[field] {
					return fmt.Errorf("question %s: choice source %s reads %s before it is asked", q.ID, q.ChoiceSource, field)
				}
			}
		}

		if q.Condition != nil {
			if err := flowengine.ValidateExpression(*q.Condition); err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
			for _, field := range q.Condition.ReferencedFields() {
				if !seen[field] {
					return fmt.Errorf("question %s: condition reads %s before it is asked", q.ID, field)
				}
			}
		}

		for _, rule := range q.Validation {
			switch rule.Type {
			case types.VALIDATION_RULE_BANK_NAME, types.VALIDATION_RULE_MIN_LENGTH:
			default:
				return fmt.Errorf("question %s: unknown validation rule %s", q.ID, rule.Type)
			}
		}
		seen[q.ID] = true
	}
	return nil
}

func ValidateBanks(banks types.BankCatalogue) error {
	if len(banks) == 0 {
		return errors.New("bank catalogue is empty")
	}
	seen := map[string]bool{}
	for _, b := range banks {
		if b.ID == "" || b.Name == "" {
			return fmt.Errorf("bank entry without id or name: %+v", b)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate bank id: %s", b.ID)
		}
		if !isSupportedCountry(b.Country) {
			return fmt.Errorf("bank %s: unsupported country %s", b.ID, b.Country)
		}
		seen[b.ID] = true
	}
	return nil
}

func isKnownQuestionType(t string) bool {
	switch t {
	case types.QUESTION_TYPE_NOTE,
		types.QUESTION_TYPE_SINGLE_CHOICE,
		types.QUESTION_TYPE_MULTI_CHOICE,
		types.QUESTION_TYPE_FREE_TEXT,
		types.QUESTION_TYPE_DATE,
		types.QUESTION_TYPE_DROPDOWN,
		types.QUESTION_TYPE_RATING_SCALE,
		types.QUESTION_TYPE_RATING_MATRIX:
		return true
	}
	return false
}

func isSupportedCountry(country string) bool {
	for _, c := range types.SUPPORTED_COUNTRIES {
		if c == country {
			return true
		}
	}
	return false
}
