package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool hands out connections for the lifetime of a handler call.
// The connection is released as soon as handler returns.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
