// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ormrp implements the orm package contracts over the raw SQL
// API of the repo.Queryer interface. Each class is registered in an
// orm.Registry, so relation targets may be given by name. Statements
// run in the opts.Transacting transaction when it is set; otherwise,
// a pooled connection is reserved for each one of them.
//
// Models are plain attribute maps and do not know their columns in
// advance. Fetched rows are decoded using their column names, hence,
// all columns of a table are visible as model attributes after fetch.
// Models and collections must not be used concurrently.
package ormrp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/core/log"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
	"gorm.io/gorm/schema"
)

// ORM defines model and collection classes and runs their statements.
type ORM struct {
	pool     repo.Pool
	registry *orm.Registry
	naming   schema.Namer
}

// New instantiates an ORM which registers its classes in reg and runs
// non-transactional statements on p pooled connections.
func New(p repo.Pool, reg *orm.Registry) *ORM {
	return &ORM{
		pool:     p,
		registry: reg,
		naming:   schema.NamingStrategy{},
	}
}

// Registry returns the registry of o classes.
func (o *ORM) Registry() *orm.Registry {
	return o.registry
}

// Option is a functional option for the ORM.Model method.
type Option func(mc *modelClass) error

// WithTable sets the table name of a model class. By default, the
// class name is converted to snake case and pluralized, so a BookTag
// class is stored in the book_tags table.
func WithTable(table string) Option {
	return func(mc *modelClass) error {
		if table == "" {
			return fmt.Errorf("empty table name")
		}
		mc.table = table
		return nil
	}
}

// WithIDAttribute sets the primary key column name. It is "id" by
// default.
func WithIDAttribute(col string) Option {
	return func(mc *modelClass) error {
		if col == "" {
			return fmt.Errorf("empty id attribute")
		}
		mc.idAttr = col
		return nil
	}
}

// WithUUIDKeys makes Save generate a random UUID for new models which
// have no ID, instead of relying on the column default value.
func WithUUIDKeys() Option {
	return func(mc *modelClass) error {
		mc.uuidKeys = true
		return nil
	}
}

// WithTimestamps makes Save maintain the created_at and updated_at
// columns.
func WithTimestamps() Option {
	return func(mc *modelClass) error {
		mc.timestamps = true
		return nil
	}
}

// Model defines and registers the name model class.
func (o *ORM) Model(name string, opts ...Option) (orm.ModelClass, error) {
	mc := &modelClass{
		name:   name,
		orm:    o,
		table:  o.naming.TableName(name),
		idAttr: "id",
	}
	for _, opt := range opts {
		if err := opt(mc); err != nil {
			return nil, fmt.Errorf("model %q: %w", name, err)
		}
	}
	if err := o.registry.RegisterModel(mc); err != nil {
		return nil, err
	}
	return mc, nil
}

// Collection defines and registers the name collection class whose
// elements belong to the modelName registered model class.
func (o *ORM) Collection(name, modelName string) (orm.CollectionClass, error) {
	mc, found := o.registry.Model(modelName)
	if !found {
		return nil, &orm.ResolutionError{Kind: "model", Name: modelName}
	}
	cc := &collectionClass{name: name, orm: o, elem: mc}
	if err := o.registry.RegisterCollection(cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// anonymous returns an unregistered collection class for elem, so
// multi-valued relations may target model classes too.
func (o *ORM) anonymous(elem orm.ModelClass) *collectionClass {
	return &collectionClass{name: elem.Name(), orm: o, elem: elem}
}

// run calls f with the opts transaction, or with a pooled connection
// if opts carries no transaction. Unique and foreign key constraint
// violations are reported as orm.ErrConflict.
func (o *ORM) run(
	ctx context.Context, opts *orm.Options, f func(q repo.Queryer) error,
) error {
	var err error
	if tx := opts.Tx(); tx != nil {
		err = f(tx)
	} else {
		err = o.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return f(c)
		})
	}
	if postgres.HasCode(err, postgres.UniqueViolation) ||
		postgres.HasCode(err, postgres.ForeignKeyViolation) {
		return fmt.Errorf("%w: %w", orm.ErrConflict, err)
	}
	return err
}

// query runs s and decodes all of its rows.
func query(
	ctx context.Context, q repo.Queryer, table string, s statement,
) ([]orm.Attrs, error) {
	sql, args := s.SQL()
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug(ctx, "querying", log.Table(table),
			slog.String("sql", sql), slog.Any("args", args),
		)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", table, err)
	}
	return decode(rows)
}

// exec runs s and returns the number of affected rows.
func exec(
	ctx context.Context, q repo.Queryer, table string, s statement,
) (int64, error) {
	sql, args := s.SQL()
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug(ctx, "executing", log.Table(table),
			slog.String("sql", sql), slog.Any("args", args),
		)
	}
	n, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec %q: %w", table, err)
	}
	return n, nil
}
