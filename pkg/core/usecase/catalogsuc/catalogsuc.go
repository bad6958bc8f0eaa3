// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catalogsuc contains the catalog UseCase which manages the
// authors, their books, tags, and comments. Each use case runs in one
// transaction scope, looking up the catalog classes by name, so all
// of its reads and writes either commit or roll back together.
package catalogsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/momeni/txscope/pkg/core/cerr"
	"github.com/momeni/txscope/pkg/core/log"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/txscope"
)

// UseCase represents the catalog use case. It holds a transactor which
// opens transaction scopes over the registered catalog classes.
type UseCase struct {
	transactor *txscope.Transactor

	maxBooks int
}

// New instantiates a catalog use case.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(t *txscope.Transactor, opts ...Option) (*UseCase, error) {
	uc := &UseCase{transactor: t}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.maxBooks == 0 {
		uc.maxBooks = 100
	}
	return uc, nil
}

// CreateAuthor use case saves a new author with its books. Either all
// of them are saved or none of them.
func (uc *UseCase) CreateAuthor(
	ctx context.Context, name string, titles []string,
) (*model.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, cerr.BadRequest(errors.New("author name is empty"))
	}
	if n := len(titles); n > uc.maxBooks {
		return nil, cerr.BadRequest(fmt.Errorf(
			"too many books (%d), at most %d are allowed", n, uc.maxBooks,
		))
	}
	for i, title := range titles {
		if strings.TrimSpace(title) == "" {
			return nil, cerr.BadRequest(fmt.Errorf("book #%d has no title", i))
		}
	}
	a, err := txscope.WithResult(ctx, uc.transactor, func(
		ctx context.Context, tc *txscope.Context,
	) (*model.Author, error) {
		authors, err := tc.Model(model.AuthorModel)
		if err != nil {
			return nil, err
		}
		am, err := authors.Forge(orm.Attrs{"name": name}).Save(ctx, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("saving author: %w", err)
		}
		books, err := tc.Model(model.BookModel)
		if err != nil {
			return nil, err
		}
		a := toAuthor(am)
		for _, title := range titles {
			bm, err := books.Forge(orm.Attrs{
				"author_id": am.ID(),
				"title":     strings.TrimSpace(title),
			}).Save(ctx, nil, nil)
			if err != nil {
				return nil, fmt.Errorf("saving book %q: %w", title, err)
			}
			a.Books = append(a.Books, toBook(bm))
		}
		return a, nil
	})
	if err != nil {
		return nil, cerr.FromORM(err)
	}
	log.Info(ctx, "author is created",
		log.ID("id", a.ID), slog.Int("books", len(a.Books)),
	)
	return a, nil
}

// Author use case fetches the id author with its books (and their
// tags) and comments.
func (uc *UseCase) Author(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, err := txscope.WithResult(ctx, uc.transactor, func(
		ctx context.Context, tc *txscope.Context,
	) (*model.Author, error) {
		am, err := fetch(ctx, tc, model.AuthorModel, id)
		if err != nil {
			return nil, err
		}
		a := toAuthor(am)
		books, err := am.HasMany(orm.ByName(model.BooksCollection), "")
		if err != nil {
			return nil, err
		}
		if books, err = books.Fetch(ctx, nil); err != nil {
			return nil, fmt.Errorf("fetching books: %w", err)
		}
		for _, bm := range books.Models() {
			b, err := withTags(ctx, bm)
			if err != nil {
				return nil, err
			}
			a.Books = append(a.Books, b)
		}
		a.Comments, err = comments(ctx, am)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
	return a, cerr.FromORM(err)
}

// TagBook use case tags the bookID book with the tagName tag, creating
// the tag if it does not exist yet. The updated book is returned.
func (uc *UseCase) TagBook(
	ctx context.Context, bookID uuid.UUID, tagName string,
) (*model.Book, error) {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return nil, cerr.BadRequest(errors.New("tag name is empty"))
	}
	b, err := txscope.WithResult(ctx, uc.transactor, func(
		ctx context.Context, tc *txscope.Context,
	) (*model.Book, error) {
		bm, err := fetch(ctx, tc, model.BookModel, bookID)
		if err != nil {
			return nil, err
		}
		tm, err := findOrCreate(ctx, tc.MustModel(model.TagModel), orm.Attrs{
			"name": tagName,
		})
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tagName, err)
		}
		_, err = findOrCreate(ctx, tc.MustModel(model.BookTagModel), orm.Attrs{
			"book_id": bm.ID(),
			"tag_id":  tm.ID(),
		})
		if err != nil {
			return nil, fmt.Errorf("linking tag %q: %w", tagName, err)
		}
		b, err := withTags(ctx, bm)
		if err != nil {
			return nil, err
		}
		return &b, nil
	})
	return b, cerr.FromORM(err)
}

// Comment use case writes a comment with the given body for the kind
// entity which is identified by id.
func (uc *UseCase) Comment(
	ctx context.Context, kind model.Commentable, id uuid.UUID, body string,
) (*model.Comment, error) {
	if err := kind.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if strings.TrimSpace(body) == "" {
		return nil, cerr.BadRequest(errors.New("comment body is empty"))
	}
	c, err := txscope.WithResult(ctx, uc.transactor, func(
		ctx context.Context, tc *txscope.Context,
	) (*model.Comment, error) {
		pm, err := fetch(ctx, tc, kind.ModelName(), id)
		if err != nil {
			return nil, err
		}
		cm, err := pm.MorphOne(
			orm.ByName(model.CommentModel), model.CommentableRelation,
		)
		if err != nil {
			return nil, err
		}
		cm, err = cm.Save(ctx, orm.Attrs{"body": body}, nil)
		if err != nil {
			return nil, fmt.Errorf("saving comment: %w", err)
		}
		c, err := toComment(cm)
		if err != nil {
			return nil, err
		}
		return &c, nil
	})
	return c, cerr.FromORM(err)
}

// DeleteAuthor use case deletes the id author with all of its books,
// their tag links, and all comments of the author and its books.
// Nothing is deleted if any one of these deletions fails.
func (uc *UseCase) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	err := uc.transactor.WithTransaction(ctx, func(
		ctx context.Context, tc *txscope.Context,
	) error {
		am, err := fetch(ctx, tc, model.AuthorModel, id)
		if err != nil {
			return err
		}
		books, err := am.HasMany(orm.ByName(model.BooksCollection), "")
		if err != nil {
			return err
		}
		if books, err = books.Fetch(ctx, nil); err != nil {
			return fmt.Errorf("fetching books: %w", err)
		}
		for _, bm := range books.Models() {
			links, err := bm.HasMany(orm.ByName(model.BookTagModel), "")
			if err != nil {
				return err
			}
			if err := destroyAll(ctx, links); err != nil {
				return fmt.Errorf("unlinking tags of book %v: %w", bm.ID(), err)
			}
			if err := destroyComments(ctx, bm); err != nil {
				return err
			}
			if _, err := bm.Destroy(ctx, &orm.Options{Require: true}); err != nil {
				return fmt.Errorf("deleting book %v: %w", bm.ID(), err)
			}
		}
		if err := destroyComments(ctx, am); err != nil {
			return err
		}
		_, err = am.Destroy(ctx, &orm.Options{Require: true})
		return err
	})
	if err != nil {
		return cerr.FromORM(err)
	}
	log.Info(ctx, "author is deleted", log.ID("id", id))
	return nil
}
