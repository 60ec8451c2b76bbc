package flowengine

import (
	"errors"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	SESSION_STATUS_IN_PROGRESS = "in_progress"
	SESSION_STATUS_TERMINATED  = types.RESPONSE_STATUS_TERMINATED
	SESSION_STATUS_COMPLETED   = types.RESPONSE_STATUS_COMPLETED
)

var (
	ErrSessionFinished    = errors.New("session already finished")
	ErrAnswerRequired     = errors.New("answer required")
	ErrQuestionNotVisible = errors.New("question is not visible")
)

// Session walks a respondent through the visible questions. in_progress moves to terminated
// or completed only through Next; both are absorbing.
type Session struct {
	definition types.SurveyDefinition
	banks      types.BankCatalogue

	index   int
	answers types.Answers
	status  string
}

func NewSession(def types.SurveyDefinition, banks types.BankCatalogue) *Session {
	return &Session{
		definition: def,
		banks:      banks,
		answers:    types.Answers{},
		status:     SESSION_STATUS_IN_PROGRESS,
	}
}

// ResumeSession restores an in-progress session from a saved position and answers.
func ResumeSession(def types.SurveyDefinition, banks types.BankCatalogue, index int, answers types.Answers) *Session {
	s := NewSession(def, banks)
	if answers != nil {
		s.answers = answers.Clone()
	}
	s.index = ClampIndex(index, s.Visible())
	return s
}

func (s *Session) Index() int {
	return s.index
}

func (s *Session) Status() string {
	return s.status
}

func (s *Session) IsFinished() bool {
	return s.status != SESSION_STATUS_IN_PROGRESS
}

func (s *Session) Answers() types.Answers {
	return s.answers.Clone()
}

func (s *Session) Visible() []types.Question {
	return VisibleQuestions(s.definition.Questions, s.answers)
}

// Current returns the question at the session index; false when nothing is visible.
func (s *Session) Current() (types.Question, bool) {
	visible := s.Visible()
	if len(visible) == 0 {
		return types.Question{}, false
	}
	return visible[ClampIndex(s.index, visible)], true
}

func (s *Session) Choices(q types.Question) []types.Choice {
	return ResolveChoices(q, s.answers, s.banks)
}

// SetAnswer stores a value for a visible question. An empty value removes the answer.
// When the change hides the current question, the index follows the current question if it
// is still visible and is otherwise clamped into the new visible list.
func (s *Session) SetAnswer(questionID string, value any, lang string) error {
	if s.IsFinished() {
		return ErrSessionFinished
	}
	visible := s.Visible()
	pos := indexOf(questionID, visible)
	if pos < 0 {
		return ErrQuestionNotVisible
	}
	q := visible[pos]

	value = types.NormalizeValue(value)
	if err := ValidateAnswer(q, value, s.answers, s.banks, lang); err != nil {
		return err
	}

	currentID := ""
	if cur, ok := s.Current(); ok {
		currentID = cur.ID
	}

	if types.IsEmptyValue(value) {
		delete(s.answers, questionID)
	} else {
		s.answers[questionID] = value
	}

	s.reposition(currentID)
	return nil
}

func (s *Session) reposition(currentID string) {
	visible := s.Visible()
	if i := indexOf(currentID, visible); i >= 0 {
		s.index = i
		return
	}
	s.index = ClampIndex(s.index, visible)
}

// Next applies Advance to the current question after checking the required gate.
func (s *Session) Next() (Transition, error) {
	if s.IsFinished() {
		return Transition{}, ErrSessionFinished
	}
	visible := s.Visible()
	s.index = ClampIndex(s.index, visible)
	if len(visible) > 0 {
		q := visible[s.index]
		if !CanAdvance(q, s.answers[q.ID]) {
			return Transition{}, ErrAnswerRequired
		}
	}

	t := Advance(s.index, visible)
	switch t.Kind {
	case TRANSITION_NEXT:
		s.index = t.NextIndex
	case TRANSITION_TERMINATE:
		s.status = SESSION_STATUS_TERMINATED
	case TRANSITION_COMPLETE:
		s.status = SESSION_STATUS_COMPLETED
	}
	return t, nil
}

// Back moves one question backwards. It is a no-op on the first question.
func (s *Session) Back() error {
	if s.IsFinished() {
		return ErrSessionFinished
	}
	visible := s.Visible()
	s.index = ClampIndex(s.index, visible)
	if s.index > 0 {
		s.index--
	}
	return nil
}

// FinalAnswers returns the answers of the questions visible at the end of the session.
// Answers left behind by questions that became hidden are dropped.
func (s *Session) FinalAnswers() types.Answers {
	final := types.Answers{}
	for _, q := range s.Visible() {
		if v, ok := s.answers[q.ID]; ok {
			final[q.ID] = types.NormalizeValue(v)
		}
	}
	return final
}
