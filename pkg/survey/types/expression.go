package types

const (
	EXPRESSION_EQ        = "eq"
	EXPRESSION_NEQ       = "neq"
	EXPRESSION_IN        = "in"
	EXPRESSION_HAS_VALUE = "hasValue"
	EXPRESSION_AND       = "and"
	EXPRESSION_OR        = "or"
	EXPRESSION_NOT       = "not"
)

// Expression is a visibility condition evaluated against the answers collected so far.
// Comparisons use Field with Value / Values, logical operators use Args.
type Expression struct {
	Name   string       `yaml:"name" json:"name" bson:"name"`
	Field  string       `yaml:"field,omitempty" json:"field,omitempty" bson:"field,omitempty"`
	Value  string       `yaml:"value,omitempty" json:"value,omitempty" bson:"value,omitempty"`
	Values []string     `yaml:"values,omitempty" json:"values,omitempty" bson:"values,omitempty"`
	Args   []Expression `yaml:"args,omitempty" json:"args,omitempty" bson:"args,omitempty"`
}

func (exp Expression) IsLogical() bool {
	switch exp.Name {
	case EXPRESSION_AND, EXPRESSION_OR, EXPRESSION_NOT:
		return true
	}
	return false
}

// ReferencedFields lists every answer field the expression reads, depth first.
func (exp Expression) ReferencedFields() []string {
	fields := []string{}
	if exp.Field != "" {
		fields = append(fields, exp.Field)
	}
	for _, arg := range exp.Args {
		fields = append(fields, arg.ReferencedFields()...)
	}
	return fields
}
