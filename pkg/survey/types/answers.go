package types

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answers maps question ids to answer values. Values are normalized to one of
// string, []string, float64, map[string]float64 (rating matrix) or bool.
type Answers map[string]any

func (a Answers) Clone() Answers {
	c := make(Answers, len(a))
	for k, v := range a {
		c[k] = NormalizeValue(v)
	}
	return c
}

func (a Answers) Has(field string) bool {
	v, ok := a[field]
	return ok && !IsEmptyValue(v)
}

func (a Answers) String(field string) string {
	if s, ok := a[field].(string); ok {
		return s
	}
	return ""
}

// Strings returns a list answer. A single string answer is returned as a one element list.
func (a Answers) Strings(field string) []string {
	switch v := a[field].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	}
	return []string{}
}

func (a Answers) Contains(field string, value string) bool {
	for _, v := range a.Strings(field) {
		if v == value {
			return true
		}
	}
	return false
}

func (a Answers) Number(field string) (float64, bool) {
	v, ok := a[field].(float64)
	return v, ok
}

func (a Answers) Ratings(field string) map[string]float64 {
	if v, ok := a[field].(map[string]float64); ok {
		return v
	}
	return map[string]float64{}
}

// IsEmptyValue reports whether v counts as "no answer". Zero numbers are answers.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]float64:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// NormalizeValue converts values decoded from JSON or BSON into the answer shapes.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, float64:
		return val
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case []string:
		return append([]string{}, val...)
	case primitive.A:
		return toStringList([]any(val))
	case []any:
		return toStringList(val)
	case map[string]float64:
		r := make(map[string]float64, len(val))
		for k, n := range val {
			r[k] = n
		}
		return r
	case primitive.M:
		return toRatings(map[string]any(val))
	case map[string]any:
		return toRatings(val)
	case primitive.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = e.Value
		}
		return toRatings(m)
	}
	return v
}

func toStringList(items []any) []string {
	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

func toRatings(m map[string]any) map[string]float64 {
	r := make(map[string]float64, len(m))
	for k, v := range m {
		if n, ok := NormalizeValue(v).(float64); ok {
			r[k] = n
		}
	}
	return r
}

func (a *Answers) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = normalizeMap(raw)
	return nil
}

func (a *Answers) UnmarshalBSON(data []byte) error {
	raw := bson.M{}
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = normalizeMap(raw)
	return nil
}

func normalizeMap(raw map[string]any) Answers {
	answers := make(Answers, len(raw))
	for k, v := range raw {
		answers[k] = NormalizeValue(v)
	}
	return answers
}
