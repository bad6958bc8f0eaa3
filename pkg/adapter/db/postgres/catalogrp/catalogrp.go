// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catalogrp defines the catalog model and collection classes
// and creates their tables. Use cases find these classes by the names
// which are declared in the model package.
package catalogrp

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/ormrp"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/repo"
)

//go:embed schema.sql
var schemaSQL string

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

// Register defines all catalog classes using o, so they are added to
// the o registry.
func (r *Repo) Register(o *ormrp.ORM) error {
	for _, m := range []struct {
		name string
		opts []ormrp.Option
	}{
		{model.AuthorModel, []ormrp.Option{ormrp.WithTimestamps()}},
		{model.BookModel, nil},
		{model.TagModel, nil},
		{model.BookTagModel, []ormrp.Option{ormrp.WithTable("books_tags")}},
		{model.CommentModel, nil},
	} {
		opts := append(m.opts, ormrp.WithUUIDKeys())
		if _, err := o.Model(m.name, opts...); err != nil {
			return fmt.Errorf("defining %q: %w", m.name, err)
		}
	}
	for name, elem := range map[string]string{
		model.BooksCollection:    model.BookModel,
		model.CommentsCollection: model.CommentModel,
	} {
		if _, err := o.Collection(name, elem); err != nil {
			return fmt.Errorf("defining %q: %w", name, err)
		}
	}
	return nil
}

// InitSchema creates the catalog tables (if they do not exist) in tx.
func (r *Repo) InitSchema(ctx context.Context, tx repo.Tx) error {
	return CreateSchema(ctx, tx.(*postgres.Tx))
}

// CreateSchema creates the catalog tables using q.
func CreateSchema[Q postgres.Queryer](ctx context.Context, q Q) error {
	if err := q.GORM(ctx).Exec(schemaSQL).Error; err != nil {
		return fmt.Errorf("creating catalog tables: %w", err)
	}
	return nil
}
