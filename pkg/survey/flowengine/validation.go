package flowengine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const DATE_ANSWER_LAYOUT = "2006-01-02"

// Free-text bank mentions this short are accepted without a catalogue match.
const bankNameMatchMinLength = 3

type ValidationError struct {
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Message)
}

func invalid(q types.Question, msg string) *ValidationError {
	return &ValidationError{QuestionID: q.ID, Message: msg}
}

// ValidateAnswer checks a normalized, non-empty value against the question's type, its
// resolved choices and its validation rules. Rule messages are returned in lang.
func ValidateAnswer(q types.Question, value any, answers types.Answers, banks types.BankCatalogue, lang string) error {
	if types.IsEmptyValue(value) {
		return nil
	}

	switch q.Type {
	case types.QUESTION_TYPE_NOTE:
		return invalid(q, "notes do not take answers")
	case types.QUESTION_TYPE_SINGLE_CHOICE, types.QUESTION_TYPE_DROPDOWN:
		v, ok := value.(string)
		if !ok {
			return invalid(q, "expected a single value")
		}
		if !isChoice(v, ResolveChoices(q, answers, banks)) {
			return invalid(q, fmt.Sprintf("unknown choice %s", v))
		}
	case types.QUESTION_TYPE_MULTI_CHOICE:
		list, ok := value.([]string)
		if !ok {
			return invalid(q, "expected a list of values")
		}
		choices := ResolveChoices(q, answers, banks)
		for _, v := range list {
			if !isChoice(v, choices) {
				return invalid(q, fmt.Sprintf("unknown choice %s", v))
			}
		}
	case types.QUESTION_TYPE_RATING_SCALE:
		n, ok := value.(float64)
		if !ok {
			return invalid(q, "expected a number")
		}
		if !isRating(n) {
			return invalid(q, fmt.Sprintf("rating must be between %d and %d", types.RATING_MIN, types.RATING_MAX))
		}
	case types.QUESTION_TYPE_RATING_MATRIX:
		ratings, ok := value.(map[string]float64)
		if !ok {
			return invalid(q, "expected ratings per option")
		}
		choices := ResolveChoices(q, answers, banks)
		for k, n := range ratings {
			if !isChoice(k, choices) {
				return invalid(q, fmt.Sprintf("unknown option %s", k))
			}
			if !isRating(n) {
				return invalid(q, fmt.Sprintf("rating must be between %d and %d", types.RATING_MIN, types.RATING_MAX))
			}
		}
	case types.QUESTION_TYPE_DATE:
		v, ok := value.(string)
		if !ok {
			return invalid(q, "expected a date")
		}
		if _, err := time.Parse(DATE_ANSWER_LAYOUT, v); err != nil {
			return invalid(q, "expected a date formatted as YYYY-MM-DD")
		}
	case types.QUESTION_TYPE_FREE_TEXT:
		if _, ok := value.(string); !ok {
			return invalid(q, "expected text")
		}
	}

	text, _ := value.(string)
	for _, rule := range q.Validation {
		switch rule.Type {
		case types.VALIDATION_RULE_BANK_NAME:
			if !isKnownBankMention(text, answers, banks) {
				return invalid(q, ruleMessage(rule, lang, "please enter a valid bank name"))
			}
		case types.VALIDATION_RULE_MIN_LENGTH:
			if utf8.RuneCountInString(strings.TrimSpace(text)) < rule.Min {
				return invalid(q, ruleMessage(rule, lang, fmt.Sprintf("answer must be at least %d characters", rule.Min)))
			}
		}
	}
	return nil
}

func ruleMessage(rule types.ValidationRule, lang string, fallback string) string {
	if msg := rule.Message.Get(lang); msg != "" {
		return msg
	}
	return fallback
}

// isKnownBankMention matches against the respondent's country when known, else every bank.
func isKnownBankMention(text string, answers types.Answers, banks types.BankCatalogue) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < bankNameMatchMinLength {
		return true
	}
	_, ok := banks.InScope(answers.String(types.FIELD_COUNTRY)).MatchName(text)
	return ok
}

func isChoice(v string, choices []types.Choice) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}

func isRating(n float64) bool {
	return n >= types.RATING_MIN && n <= types.RATING_MAX
}
