package flowengine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

// EvalExpression interprets a visibility condition against the answers collected so far.
func EvalExpression(exp types.Expression, answers types.Answers) (val bool, err error) {
	switch exp.Name {
	case types.EXPRESSION_EQ:
		val, err = eq(exp, answers)
	case types.EXPRESSION_NEQ:
		val, err = eq(exp, answers)
		val = !val
	case types.EXPRESSION_IN:
		val, err = in(exp, answers)
	case types.EXPRESSION_HAS_VALUE:
		val, err = hasValue(exp, answers)
	case types.EXPRESSION_AND:
		val, err = and(exp, answers)
	case types.EXPRESSION_OR:
		val, err = or(exp, answers)
	case types.EXPRESSION_NOT:
		val, err = not(exp, answers)
	default:
		err = fmt.Errorf("expression name not known: %s", exp.Name)
	}
	if err != nil {
		return false, err
	}
	return val, nil
}

// ValidateExpression checks the shape of an expression tree without evaluating it.
func ValidateExpression(exp types.Expression) error {
	switch exp.Name {
	case types.EXPRESSION_EQ, types.EXPRESSION_NEQ:
		if exp.Field == "" {
			return fmt.Errorf("%s: missing field", exp.Name)
		}
	case types.EXPRESSION_IN:
		if exp.Field == "" {
			return fmt.Errorf("%s: missing field", exp.Name)
		}
		if len(exp.Values) == 0 {
			return fmt.Errorf("%s: missing values", exp.Name)
		}
	case types.EXPRESSION_HAS_VALUE:
		if exp.Field == "" {
			return fmt.Errorf("%s: missing field", exp.Name)
		}
	case types.EXPRESSION_AND, types.EXPRESSION_OR:
		if len(exp.Args) < 2 {
			return fmt.Errorf("%s: should have at least two arguments", exp.Name)
		}
	case types.EXPRESSION_NOT:
		if len(exp.Args) != 1 {
			return fmt.Errorf("%s: should have one argument", exp.Name)
		}
	default:
		return fmt.Errorf("expression name not known: %s", exp.Name)
	}
	if exp.IsLogical() && exp.Field != "" {
		return fmt.Errorf("%s: logical expression cannot have a field", exp.Name)
	}
	for _, arg := range exp.Args {
		if err := ValidateExpression(arg); err != nil {
			return err
		}
	}
	return nil
}

func answerAsString(answers types.Answers, field string) (string, bool) {
	switch v := answers[field].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func eq(exp types.Expression, answers types.Answers) (bool, error) {
	if exp.Field == "" {
		return false, errors.New("missing field")
	}
	v, ok := answerAsString(answers, exp.Field)
	if !ok {
		return false, nil
	}
	return v == exp.Value, nil
}

// in is true when a single answer is one of the values, or a list answer shares one of them.
func in(exp types.Expression, answers types.Answers) (bool, error) {
	if exp.Field == "" {
		return false, errors.New("missing field")
	}
	candidates := []string{}
	if v, ok := answerAsString(answers, exp.Field); ok {
		candidates = append(candidates, v)
	} else {
		candidates = answers.Strings(exp.Field)
	}
	for _, c := range candidates {
		for _, v := range exp.Values {
			if c == v {
				return true, nil
			}
		}
	}
	return false, nil
}

func hasValue(exp types.Expression, answers types.Answers) (bool, error) {
	if exp.Field == "" {
		return false, errors.New("missing field")
	}
	return answers.Has(exp.Field), nil
}

func and(exp types.Expression, answers types.Answers) (bool, error) {
	if len(exp.Args) < 2 {
		return false, errors.New("should have at least two arguments")
	}
	for _, arg := range exp.Args {
		v, err := EvalExpression(arg, answers)
		if err != nil {
			return false, err
		}
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func or(exp types.Expression, answers types.Answers) (bool, error) {
	if len(exp.Args) < 2 {
		return false, errors.New("should have at least two arguments")
	}
	for _, arg := range exp.Args {
		v, err := EvalExpression(arg, answers)
		if err != nil {
			slog.Debug("unexpected error during expression eval", slog.String("expression", exp.Name), slog.String("error", err.Error()))
			continue
		}
		if v {
			return true, nil
		}
	}
	return false, nil
}

func not(exp types.Expression, answers types.Answers) (bool, error) {
	if len(exp.Args) != 1 {
		return false, errors.New("should have one argument")
	}
	v, err := EvalExpression(exp.Args[0], answers)
	if err != nil {
		return false, err
	}
	return !v, nil
}
