package ormrp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// statement is a parameterized SQL statement.
type statement interface {
	SQL() (sql string, args []any)
}

// ident quotes the parts of a (possibly qualified) identifier.
func ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// params collects the arguments of a statement and numbers them.
type params struct {
	args []any
}

func (p *params) add(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

// sortedKeys returns the keys of attrs in order, so generated SQL is
// deterministic.
func sortedKeys[V any](attrs map[string]V) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type selectStmt struct {
	params
	table   string
	columns []string
	joins   []string
	where   []string
	orderBy string
	limit   int
}

func newSelect(table string, columns []string) *selectStmt {
	return &selectStmt{table: table, columns: columns}
}

// eq adds a table.col = value condition. A nil value is compared
// using the IS NULL operator.
func (s *selectStmt) eq(table, col string, v any) {
	if v == nil {
		s.where = append(s.where, ident(table, col)+" IS NULL")
		return
	}
	s.where = append(s.where, ident(table, col)+" = "+s.add(v))
}

// join adds an inner join of table whose left.lcol equals right.rcol.
func (s *selectStmt) join(table, lcol, right, rcol string) {
	s.joins = append(s.joins, fmt.Sprintf(
		"JOIN %s ON %s = %s",
		ident(table), ident(table, lcol), ident(right, rcol),
	))
}

func (s *selectStmt) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString(ident(s.table) + ".*")
	} else {
		for i, col := range s.columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(s.table, col))
		}
	}
	b.WriteString(" FROM " + ident(s.table))
	for _, j := range s.joins {
		b.WriteString(" " + j)
	}
	if len(s.where) > 0 {
		b.WriteString(" WHERE " + strings.Join(s.where, " AND "))
	}
	if s.orderBy != "" {
		b.WriteString(" ORDER BY " + ident(s.table, s.orderBy))
	}
	if s.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", s.limit)
	}
	return b.String(), s.args
}

type insertStmt struct {
	params
	table string
	attrs map[string]any
}

func (s *insertStmt) SQL() (string, []any) {
	s.args = nil
	if len(s.attrs) == 0 {
		return fmt.Sprintf(
			"INSERT INTO %s DEFAULT VALUES RETURNING *", ident(s.table),
		), nil
	}
	keys := sortedKeys(s.attrs)
	cols := make([]string, 0, len(keys))
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, ident(k))
		vals = append(vals, s.add(s.attrs[k]))
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(s.table), strings.Join(cols, ", "), strings.Join(vals, ", "),
	), s.args
}

type updateStmt struct {
	params
	table  string
	attrs  map[string]any
	idAttr string
	id     any
}

func (s *updateStmt) SQL() (string, []any) {
	s.args = nil
	keys := sortedKeys(s.attrs)
	sets := make([]string, 0, len(keys))
	for _, k := range keys {
		sets = append(sets, ident(k)+" = "+s.add(s.attrs[k]))
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = %s RETURNING *",
		ident(s.table), strings.Join(sets, ", "),
		ident(s.idAttr), s.add(s.id),
	), s.args
}

type deleteStmt struct {
	params
	table  string
	idAttr string
	id     any
}

func (s *deleteStmt) SQL() (string, []any) {
	s.args = nil
	return fmt.Sprintf(
		"DELETE FROM %s WHERE %s = %s",
		ident(s.table), ident(s.idAttr), s.add(s.id),
	), s.args
}
