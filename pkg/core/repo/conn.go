package repo

import "context"

// TxHandler is the body of a transaction. Returning a nil error asks
// for a commit, while a non-nil error (or a panic) causes a rollback.
type TxHandler func(context.Context, Tx) error

// Conn is a pooled connection which may run statements out of any
// transaction or open a transaction with the Tx method. It is the
// transaction primitive which txscope relies on: the commit/rollback
// decision is made by Tx alone, based on the handler outcome.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a Tx object to mistakenly implement
	// the Conn interface.
	IsConn()
}
