package postgres

import (
	"context"

	"github.com/momeni/txscope/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is satisfied by the Conn and Tx types, so repository
// functions may accept either of them as a type parameter and use
// the GORM method when raw SQL is not enough.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// exec runs a raw statement on db (a pooled session or a transaction)
// and returns the number of affected rows.
func exec(ctx context.Context, db *gorm.DB, sql string, args []any) (int64, error) {
	tt := db.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

func query(ctx context.Context, db *gorm.DB, sql string, args []any) (repo.Rows, error) {
	rs, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rows{rs}, nil
}
