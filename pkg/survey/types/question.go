package types

const (
	QUESTION_TYPE_NOTE          = "note"
	QUESTION_TYPE_SINGLE_CHOICE = "single-choice"
	QUESTION_TYPE_MULTI_CHOICE  = "multi-choice"
	QUESTION_TYPE_FREE_TEXT     = "free-text"
	QUESTION_TYPE_DATE          = "date"
	QUESTION_TYPE_DROPDOWN      = "dropdown"
	QUESTION_TYPE_RATING_SCALE  = "rating-scale"
	QUESTION_TYPE_RATING_MATRIX = "rating-matrix"
)

const (
	RATING_MIN = 0
	RATING_MAX = 10
)

// ChoiceSource tags where the option list of a question comes from.
type ChoiceSource string

const (
	CHOICE_SOURCE_STATIC                    ChoiceSource = "static"
	CHOICE_SOURCE_COUNTRY_BANKS             ChoiceSource = "country_banks"
	CHOICE_SOURCE_COUNTRY_BANKS_WITH_EXTRAS ChoiceSource = "country_banks_with_extras"
	CHOICE_SOURCE_AWARE_BANKS               ChoiceSource = "aware_banks"
	CHOICE_SOURCE_USED_BANKS                ChoiceSource = "used_banks"
	CHOICE_SOURCE_CURRENT_BANKS             ChoiceSource = "current_banks"
)

// DependsOn returns the answer fields read when resolving the source.
func (cs ChoiceSource) DependsOn() []string {
	switch cs {
	case CHOICE_SOURCE_COUNTRY_BANKS, CHOICE_SOURCE_COUNTRY_BANKS_WITH_EXTRAS:
		return []string{FIELD_COUNTRY}
	case CHOICE_SOURCE_AWARE_BANKS:
		return []string{FIELD_COUNTRY, FIELD_AWARE_BANKS}
	case CHOICE_SOURCE_USED_BANKS:
		return []string{FIELD_COUNTRY, FIELD_EVER_USED}
	case CHOICE_SOURCE_CURRENT_BANKS:
		return []string{FIELD_COUNTRY, FIELD_CURRENTLY_USING}
	}
	return []string{}
}

func (cs ChoiceSource) IsKnown() bool {
	switch cs {
	case "", CHOICE_SOURCE_STATIC,
		CHOICE_SOURCE_COUNTRY_BANKS,
		CHOICE_SOURCE_COUNTRY_BANKS_WITH_EXTRAS,
		CHOICE_SOURCE_AWARE_BANKS,
		CHOICE_SOURCE_USED_BANKS,
		CHOICE_SOURCE_CURRENT_BANKS:
		return true
	}
	return false
}

const (
	VALIDATION_RULE_BANK_NAME  = "bank-name"
	VALIDATION_RULE_MIN_LENGTH = "min-length"
)

type ValidationRule struct {
	Type    string    `yaml:"type" json:"type"`
	Message Localized `yaml:"message" json:"message"`
	Min     int       `yaml:"min,omitempty" json:"min,omitempty"`
}

type Choice struct {
	Label Localized `yaml:"label" json:"label"`
	Value string    `yaml:"value" json:"value"`
}

type Question struct {
	ID                 string           `yaml:"id" json:"id"`
	Type               string           `yaml:"type" json:"type"`
	Section            string           `yaml:"section" json:"section"`
	Label              Localized        `yaml:"label" json:"label"`
	Description        Localized        `yaml:"description,omitempty" json:"description,omitempty"`
	Placeholder        Localized        `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required           bool             `yaml:"required,omitempty" json:"required,omitempty"`
	Choices            []Choice         `yaml:"choices,omitempty" json:"choices,omitempty"`
	ChoiceSource       ChoiceSource     `yaml:"choiceSource,omitempty" json:"choiceSource,omitempty"`
	Condition          *Expression      `yaml:"condition,omitempty" json:"condition,omitempty"`
	IsTerminationPoint bool             `yaml:"isTerminationPoint,omitempty" json:"isTerminationPoint,omitempty"`
	Validation         []ValidationRule `yaml:"validation,omitempty" json:"validation,omitempty"`
}

func (q Question) HasDynamicChoices() bool {
	return q.ChoiceSource != "" && q.ChoiceSource != CHOICE_SOURCE_STATIC
}

// SurveyDefinition is the authored, ordered question list.
type SurveyDefinition struct {
	Key       string     `yaml:"key" json:"key"`
	Version   string     `yaml:"version" json:"version"`
	Questions []Question `yaml:"questions" json:"questions"`
}

func (sd SurveyDefinition) QuestionByID(id string) (Question, bool) {
	for _, q := range sd.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
