package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/txscope/pkg/core/log"
	"github.com/momeni/txscope/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is a pooled database connection which is valid during a
// ConnHandler call. It runs statements out of any transaction or
// begins one using the Tx method.
type Conn struct {
	*gorm.DB
}

type TxHandler = repo.TxHandler

// Tx begins a transaction and calls f with it. The outcome of f
// decides about the transaction: a nil error commits it, while an
// error or a panic rolls it back. The handler error (or recovered
// panic) is returned after wrapping, together with any rollback or
// commit error.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	db := c.DB.WithContext(ctx).Begin()
	if err = db.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		err = finish(ctx, db, recover(), err)
	}()
	return f(ctx, &Tx{DB: db})
}

// finish ends the db transaction based on the recovered panic value
// r and the handler error, returning the final Tx outcome.
func finish(ctx context.Context, db *gorm.DB, r any, err error) error {
	switch {
	case r != nil:
		log.Warn(ctx, "rolling back a panicked transaction")
		if err := db.Rollback().Error; err != nil {
			return fmt.Errorf("panicked: %v, rollback: %w", r, err)
		}
		return fmt.Errorf("panicked: %v", r)
	case err != nil:
		log.Debug(ctx, "rolling back transaction", log.Err("error", err))
		if err2 := db.Rollback().Error; err2 != nil {
			return fmt.Errorf("handler: %w, rollback: %w", err, err2)
		}
		return fmt.Errorf("handler: %w", err)
	}
	if err := db.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Exec runs sql out of any transaction.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, c.DB, sql, args)
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, c.DB, sql, args)
}

func (c *Conn) IsConn() {
}

func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
