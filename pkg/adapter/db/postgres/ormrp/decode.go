package ormrp

import (
	"fmt"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
)

// decode reads all rows as attribute maps and closes them.
func decode(rows repo.Rows) ([]orm.Attrs, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	var res []orm.Attrs
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("values: %w", err)
		}
		attrs := make(orm.Attrs, len(cols))
		for i, col := range cols {
			attrs[col] = vals[i]
		}
		res = append(res, attrs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return res, nil
}
