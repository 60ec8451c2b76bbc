package flowengine

import (
	"log/slog"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

type TransitionKind string

const (
	TRANSITION_NEXT      TransitionKind = "next"
	TRANSITION_TERMINATE TransitionKind = "terminate"
	TRANSITION_COMPLETE  TransitionKind = "complete"
)

type Transition struct {
	Kind      TransitionKind `json:"kind"`
	NextIndex int            `json:"nextIndex"`
}

// IsVisible reports whether the question's condition admits it. A condition that cannot
// be evaluated hides the question.
func IsVisible(q types.Question, answers types.Answers) bool {
	if q.Condition == nil {
		return true
	}
	ok, err := EvalExpression(*q.Condition, answers)
	if err != nil {
		slog.Debug("condition evaluation failed", slog.String("questionID", q.ID), slog.String("error", err.Error()))
		return false
	}
	return ok
}

// VisibleQuestions returns the questions admitted by the current answers, in authoring order.
func VisibleQuestions(all []types.Question, answers types.Answers) []types.Question {
	visible := make([]types.Question, 0, len(all))
	for _, q := range all {
		if IsVisible(q, answers) {
			visible = append(visible, q)
		}
	}
	return visible
}

// Advance decides what follows the question at currentIndex.
func Advance(currentIndex int, visible []types.Question) Transition {
	if currentIndex >= 0 && currentIndex < len(visible) && visible[currentIndex].IsTerminationPoint {
		return Transition{Kind: TRANSITION_TERMINATE, NextIndex: currentIndex}
	}
	if currentIndex >= len(visible)-1 {
		return Transition{Kind: TRANSITION_COMPLETE, NextIndex: currentIndex}
	}
	return Transition{Kind: TRANSITION_NEXT, NextIndex: currentIndex + 1}
}

// CanAdvance is false only for a required question without an answer. Numeric 0 is an answer.
func CanAdvance(q types.Question, value any) bool {
	if !q.Required {
		return true
	}
	return !types.IsEmptyValue(value)
}

// ClampIndex keeps index inside the visible list.
func ClampIndex(index int, visible []types.Question) int {
	if len(visible) == 0 || index < 0 {
		return 0
	}
	if index >= len(visible) {
		return len(visible) - 1
	}
	return index
}

func indexOf(questionID string, visible []types.Question) int {
	for i, q := range visible {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}
