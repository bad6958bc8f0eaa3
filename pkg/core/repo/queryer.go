package repo

import "context"

// Queryer is the statement execution API which is shared by the Conn
// and Tx interfaces. SQL parameters are numbered like $1, $2, etc.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is a forward-only cursor over a query result set.
// It must be closed before the next statement is sent on the same
// connection or transaction.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
	Columns() ([]string, error)
}
