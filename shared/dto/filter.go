package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterPlainQuery        = "plain"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter renders one predicate with named (sqlx) parameters. ArgName defaults
// to Field and must be unique within a FilterGroup. A plain query is written
// as-is and binds Args.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
	Args     map[string]any
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause returns an empty clause for an unknown operator.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	column, name := f.column(), f.argName()

	if symbol, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, symbol, name), map[string]any{name: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), map[string]any{name: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterOperatorIn:
		return f.in(column, name)
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return "(" + query + ")", maps.Clone(f.Args)
	case FilterIsNull:
		return column + " IS NULL", map[string]any{}
	case FilterIsNotNull:
		return column + " IS NOT NULL", map[string]any{}
	}

	return "", map[string]any{}
}

// in expands a slice into one parameter per element. Empty slices match nothing.
func (f *Filter) in(column, name string) (string, map[string]any) {
	args := map[string]any{}

	values := reflect.ValueOf(f.Value)
	if values.Kind() != reflect.Slice && values.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s = :%s", column, name), args
	}

	if values.Len() == 0 {
		return "FALSE", args
	}

	placeholders := make([]string, values.Len())

	for idx := range values.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = values.Index(idx).Interface()
		placeholders[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filters (Filter or nested FilterGroup values) with Operator,
// AND when unset.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	add := func(where string, arg map[string]any) {
		if where == "" {
			return
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	for _, item := range f.Filters {
		switch filter := item.(type) {
		case Filter:
			add(filter.GetWhereClause())
		case FilterGroup:
			add(filter.GetWhereClause())
		}
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
