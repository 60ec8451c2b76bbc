package surveydefinition

import (
	"encoding/csv"
	"io"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

// SurveyInfoExporter writes the codebook of a survey definition: one line per question
// option, or a single line for questions without a static option list.
type SurveyInfoExporter struct {
	definition types.SurveyDefinition
	lang       string
}

func NewSurveyInfoExporter(definition types.SurveyDefinition, lang string) SurveyInfoExporter {
	if !types.IsSupportedLanguage(lang) {
		lang = types.DEFAULT_LANGUAGE
	}
	return SurveyInfoExporter{
		definition: definition,
		lang:       lang,
	}
}

func (se SurveyInfoExporter) GetSurveyInfoCSV(writer io.Writer) error {
	header := []string{
		"surveyKey", "version", "questionKey", "section", "type",
		"title", "required", "choiceSource", "optionKey", "optionLabel",
	}

	w := csv.NewWriter(writer)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, question := range se.definition.Questions {
		questionCols := []string{
			se.definition.Key,
			se.definition.Version,
			question.ID,
			question.Section,
			question.Type,
			question.Label.Get(se.lang),
			boolCol(question.Required),
			string(question.ChoiceSource),
		}

		if len(question.Choices) == 0 {
			line := append(append([]string{}, questionCols...), "", "")
			if err := w.Write(line); err != nil {
				return err
			}
			continue
		}

		for _, option := range question.Choices {
			line := append(append([]string{}, questionCols...), option.Value, option.Label.Get(se.lang))
			if err := w.Write(line); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func boolCol(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
