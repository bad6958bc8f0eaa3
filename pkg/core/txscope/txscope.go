// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package txscope threads a database transaction through the models
// and collections which are looked up in a transaction scope.
//
// The Transactor.WithTransaction method opens a transaction and passes
// a *Context to its handler. The Context resolves model and collection
// classes by name, returning classes which are bound to the transaction
// handle. Every model or collection which is forged by a bound class
// carries the same handle and injects it into the Options of its Fetch,
// FetchAll, FetchOne, Save, and Destroy operations, unless the caller
// has passed an explicit Transacting option. Relation methods of bound
// models resolve their targets and bind them too, so related models
// which are reached from a transaction scope stay in that transaction.
//
//	err := t.WithTransaction(ctx, func(ctx context.Context, tc *txscope.Context) error {
//		records, err := tc.Model("Record")
//		if err != nil {
//			return err
//		}
//		_, err = records.Forge(nil).Save(ctx, orm.Attrs{"name": "x"}, nil)
//		return err
//	})
//
// Bound classes are created per lookup and are never cached or shared
// among transactions, hence, no synchronization is required here.
package txscope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/txscope/pkg/core/log"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
	"go.uber.org/atomic"
)

// Handler is the body of a transaction scope. The transaction commits
// if it returns nil and rolls back otherwise.
type Handler func(ctx context.Context, tc *Context) error

// Transactor opens transaction scopes using a connection pool and
// resolves class names using a registry.
type Transactor struct {
	pool     repo.Pool
	registry *orm.Registry

	scopes *atomic.Uint64 // number of opened scopes
}

// New instantiates a Transactor. Both arguments are mandatory.
func New(p repo.Pool, r *orm.Registry) *Transactor {
	return &Transactor{pool: p, registry: r, scopes: atomic.NewUint64(0)}
}

// Scopes returns the number of transaction scopes which were opened
// by t so far.
func (t *Transactor) Scopes() uint64 {
	return t.scopes.Load()
}

// Registry returns the registry which is used for the name lookups.
func (t *Transactor) Registry() *orm.Registry {
	return t.registry
}

// WithTransaction acquires a connection, begins a transaction, and
// calls h with a Context wrapping that transaction. The commit or
// rollback decision is taken by the underlying repo.Conn.Tx method,
// based on the h returned error (or its panic), and the resulting
// error is returned as is.
// Records which are logged with the ctx which is passed to h carry
// the scope number, so statements of one scope may be correlated.
func (t *Transactor) WithTransaction(ctx context.Context, h Handler) error {
	ctx = log.With(ctx, slog.Uint64("tx_scope", t.scopes.Inc()))
	log.Debug(ctx, "opening transaction scope")
	err := t.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return h(ctx, newContext(tx, t.registry))
		})
	})
	log.Debug(ctx, "transaction scope is closed", log.Err("error", err))
	return err
}

// WithResult runs fn in a transaction scope of t, similar to the
// WithTransaction method, and returns its result. The zero value of
// T is returned when the transaction could not commit.
func WithResult[T any](
	ctx context.Context,
	t *Transactor,
	fn func(ctx context.Context, tc *Context) (T, error),
) (res T, err error) {
	err = t.WithTransaction(ctx, func(ctx context.Context, tc *Context) error {
		var err error
		res, err = fn(ctx, tc)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res, nil
}

// Context is passed to the Handler of a transaction scope. It is only
// valid during that Handler call.
type Context struct {
	*scope
}

func newContext(tx repo.Tx, r *orm.Registry) *Context {
	return &Context{scope: &scope{tx: tx, registry: r}}
}

// Model looks up the name model class and returns a new class which
// is bound to the transaction of tc. If name is not registered, a
// *orm.ResolutionError will be returned.
func (tc *Context) Model(name string) (orm.ModelClass, error) {
	mc, found := tc.registry.Model(name)
	if !found {
		return nil, &orm.ResolutionError{Kind: "model", Name: name}
	}
	return tc.bindModelClass(mc), nil
}

// Collection looks up the name collection class and returns a new
// class which is bound to the transaction of tc. If name is not
// registered, a *orm.ResolutionError will be returned.
func (tc *Context) Collection(name string) (orm.CollectionClass, error) {
	cc, found := tc.registry.Collection(name)
	if !found {
		return nil, &orm.ResolutionError{Kind: "collection", Name: name}
	}
	return tc.bindCollectionClass(cc), nil
}

// Transaction returns the raw transaction handle, so it may be passed
// to operations which are not aware of bound classes.
func (tc *Context) Transaction() repo.Tx {
	return tc.tx
}

// MustModel is like Model, but panics if name cannot be resolved.
// It is useful for the registrations which are known to be present.
func (tc *Context) MustModel(name string) orm.ModelClass {
	mc, err := tc.Model(name)
	if err != nil {
		panic(fmt.Sprintf("txscope: %v", err))
	}
	return mc
}

type transactional interface {
	Transaction() repo.Tx
}

// TransactionOf returns the transaction handle which is carried by
// v and true, if v is a bound class, model, or collection.
func TransactionOf(v any) (repo.Tx, bool) {
	t, ok := v.(transactional)
	if !ok {
		return nil, false
	}
	tx := t.Transaction()
	return tx, tx != nil
}
