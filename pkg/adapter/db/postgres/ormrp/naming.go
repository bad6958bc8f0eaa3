package ormrp

import (
	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// foreignKey returns the default name of a column which refers to the
// idAttr column of table, such as author_id for the authors table.
func foreignKey(table, idAttr string) string {
	return strcase.ToSnake(inflection.Singular(table)) + "_" + idAttr
}

// morphColumns returns the id and type column names of the name
// polymorphic relation.
func morphColumns(name string) (idCol, typeCol string) {
	n := strcase.ToSnake(name)
	return n + "_id", n + "_type"
}

// joinTable returns the default join table of two tables, which is
// their names in lexical order, separated by an underscore.
func joinTable(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}
