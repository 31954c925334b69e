package repository

import (
	"reflect"
	"slices"
	"strings"
)

// joiner is implemented by read models that span more than one table.
type joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	expr := c.table + "." + c.name
	if c.alias != "" {
		expr += " AS " + c.alias
	}

	return expr
}

// schema is derived once per model from its struct tags:
//
//	db:"name"       column (and result field) name
//	table:"hotels"  column owned by a joined table; excluded from inserts
//	column:"name"   real column when db names an alias
//
// Embedded structs are flattened.
type schema struct {
	table   string
	join    string
	columns []column
	insert  []string
}

func newSchema[T any](table string) schema {
	var zero T

	s := schema{table: table}
	s.collect(reflect.TypeOf(zero))

	if j, ok := any(zero).(joiner); ok {
		s.join = j.GetJoinQuery()
	}

	return s
}

func (s *schema) collect(t reflect.Type) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			s.collect(field.Type)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		col := column{name: name, table: field.Tag.Get("table")}
		if col.table == "" {
			col.table = s.table
		}

		if real := field.Tag.Get("column"); real != "" {
			col.name, col.alias = real, name
		}

		s.columns = append(s.columns, col)

		if col.table == s.table {
			s.insert = append(s.insert, name)
		}
	}
}

// selectList returns the projection, narrowed to only (by db name) when given.
func (s *schema) selectList(only ...string) string {
	exprs := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		name := col.name
		if col.alias != "" {
			name = col.alias
		}

		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (s *schema) insertQuery() string {
	placeholders := make([]string, len(s.insert))
	for i, name := range s.insert {
		placeholders[i] = ":" + name
	}

	return "INSERT INTO " + s.table + " (" + strings.Join(s.insert, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
}
