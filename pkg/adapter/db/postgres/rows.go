package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// rows exposes *sql.Rows as repo.Rows. The Columns, Next, Err,
// and Scan methods are promoted from the embedded rows.
type rows struct {
	*sql.Rows
}

func (r rows) Close() {
	// returned error may be checked by calling the Err() method
	_ = r.Rows.Close()
}

// Values scans the current row dynamically. Byte slices and raw uuid
// arrays are converted to strings, so all returned values are
// comparable and may be passed back as statement arguments.
func (r rows) Values() ([]any, error) {
	names, err := r.Columns()
	if err != nil {
		return nil, fmt.Errorf("column-names: %w", err)
	}
	vals := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.Scan(ptrs...); err != nil {
		return nil, err
	}
	for i, v := range vals {
		switch vv := v.(type) {
		case []byte:
			vals[i] = string(vv)
		case [16]byte:
			vals[i] = uuid.UUID(vv).String()
		}
	}
	return vals, nil
}
