// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momeni/txscope/internal/test/dbcontainer"
	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationPoolTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
}

func TestIntegrationPoolTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationPoolTestSuite{
		Ctx:  ctx,
		Pool: pool,
	})
}

func (ipts *IntegrationPoolTestSuite) SetupSuite() {
	ipts.exec(`CREATE TABLE IF NOT EXISTS notes (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    body TEXT NOT NULL UNIQUE,
    raw BYTEA
)`)
}

func (ipts *IntegrationPoolTestSuite) SetupTest() {
	ipts.exec(`TRUNCATE notes`)
}

func (ipts *IntegrationPoolTestSuite) exec(sql string, args ...any) {
	err := ipts.Pool.Conn(ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, sql, args...)
		return err
	})
	ipts.Require().NoError(err, "failed to exec %q", sql)
}

func (ipts *IntegrationPoolTestSuite) tx(h repo.TxHandler) error {
	return ipts.Pool.Conn(ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, h)
	})
}

func (ipts *IntegrationPoolTestSuite) count() (n int64) {
	err := ipts.Pool.Conn(ipts.Ctx, func(ctx context.Context, c repo.Conn) error {
		rows, err := c.Query(ctx, `SELECT count(*) FROM notes`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := rows.Scan(&n); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	ipts.Require().NoError(err, "failed to count notes")
	return n
}

func insert(body string) repo.TxHandler {
	return func(ctx context.Context, tx repo.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO notes (body) VALUES ($1)`, body)
		return err
	}
}

func (ipts *IntegrationPoolTestSuite) TestCommit() {
	ipts.Require().NoError(ipts.tx(insert("a")))
	ipts.Equal(int64(1), ipts.count())
}

func (ipts *IntegrationPoolTestSuite) TestRollbackOnError() {
	errBoom := errors.New("boom")
	err := ipts.tx(func(ctx context.Context, tx repo.Tx) error {
		if err := insert("a")(ctx, tx); err != nil {
			return err
		}
		return errBoom
	})
	ipts.ErrorIs(err, errBoom, "handler error must be wrapped")
	ipts.Zero(ipts.count(), "insert must be rolled back")
}

func (ipts *IntegrationPoolTestSuite) TestRollbackOnPanic() {
	err := ipts.tx(func(ctx context.Context, tx repo.Tx) error {
		if err := insert("a")(ctx, tx); err != nil {
			return err
		}
		panic("oops")
	})
	ipts.ErrorContains(err, "panicked: oops")
	ipts.Zero(ipts.count(), "insert must be rolled back")
}

func (ipts *IntegrationPoolTestSuite) TestUniqueViolation() {
	ipts.Require().NoError(ipts.tx(insert("a")))
	err := ipts.tx(insert("a"))
	ipts.True(postgres.HasCode(err, postgres.UniqueViolation), "err=%v", err)
	ipts.False(postgres.HasCode(err, postgres.ForeignKeyViolation))
}

func (ipts *IntegrationPoolTestSuite) TestValues() {
	ipts.exec(`INSERT INTO notes (body, raw) VALUES ($1, $2)`, "a", []byte("xyz"))
	err := ipts.tx(func(ctx context.Context, tx repo.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id, body, raw FROM notes`)
		if err != nil {
			return err
		}
		defer rows.Close()
		ipts.Require().True(rows.Next(), "one row is expected")
		vals, err := rows.Values()
		ipts.Require().NoError(err)
		ipts.Require().Len(vals, 3)
		id, ok := vals[0].(string)
		ipts.True(ok, "uuid must be decoded as a string, got %T", vals[0])
		ipts.Len(id, 36)
		ipts.Equal("a", vals[1])
		ipts.Equal("xyz", vals[2], "bytes must be decoded as a string")
		ipts.False(rows.Next())
		return rows.Err()
	})
	ipts.NoError(err)
}
