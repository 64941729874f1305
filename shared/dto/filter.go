package dto

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons maps binary operators to their SQL form.
var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate over a column. ArgName defaults to Field and must be unique
// within the statement it ends up in.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) arg() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate with named placeholders. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.arg()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		return f.in(column, name, args), args
	case FilterIsNull:
		return column + " IS NULL", args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	}

	return "", args
}

// in expands a slice value into one placeholder per element. An empty slice matches nothing.
func (f *Filter) in(column, name string, args map[string]any) string {
	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, name)
	}

	if val.Len() == 0 {
		return "FALSE"
	}

	placeholders := make([]string, val.Len())

	for i := range val.Len() {
		key := fmt.Sprintf("%s_%d", name, i)
		args[key] = val.Index(i).Interface()
		placeholders[i] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
}

// FilterGroup joins Filters, which hold Filter or nested FilterGroup values, with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch v := item.(type) {
		case Filter:
			where, arg = v.GetWhereClause()
		case FilterGroup:
			where, arg = v.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")", args
}

// QueryField maps a query string parameter to a filtered column.
type QueryField struct {
	Param    string
	Column   string
	Operator string
}

// FilterFromQuery ANDs one filter per non-empty query parameter.
func FilterFromQuery(values url.Values, table string, fields ...QueryField) FilterGroup {
	group := FilterGroup{Operator: FilterGroupOperatorAnd, Filters: []any{}}

	for _, field := range fields {
		value := values.Get(field.Param)
		if value == "" {
			continue
		}

		filter := Filter{ArgName: field.Param, Field: field.Column, Value: value, Operator: field.Operator, Table: table}
		if filter.Field == "" {
			filter.Field = field.Param
		}

		if filter.Operator == "" {
			filter.Operator = FilterOperatorEq
		}

		group.Filters = append(group.Filters, filter)
	}

	return group
}
