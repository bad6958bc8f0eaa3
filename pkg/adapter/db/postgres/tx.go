// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/txscope/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is the transaction handle which is passed to the TxHandler
// of Conn.Tx and, from there, to the txscope bound classes as the
// orm.Options.Transacting value. It must not be used concurrently
// or after its handler returns.
// Statements of a Tx run in the READ-COMMITTED isolation level unless
// the database default is changed:
// https://www.postgresql.org/docs/current/transaction-iso.html
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args in the transaction and returns the number
// of affected rows. Placeholders are numbered as $1, $2, etc.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, tx.DB, sql, args)
}

// Query runs sql with args in the transaction and returns its result
// set. The rows must be closed before running another statement on
// the same transaction.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, tx.DB, sql, args)
}

// IsTx method prevents a non-Tx object (such as a Conn) to
// mistakenly implement the Tx interface.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
