// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/txscope/pkg/adapter/config"
	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/catalogrp"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/ormrp"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/txscope"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog tables with sample records",
	Long: `Fill the catalog tables with a few sample authors, books,
tags, and comments. Each author is created in its own transaction, so
a failure keeps the previously created authors.
The catalog tables must be created beforehand using the init action.`,
	RunE: seedDB,
	Args: cobra.NoArgs,
}

var samples = []struct {
	author string
	books  []string
	tags   []string
}{
	{"Alan Donovan", []string{"The Go Programming Language"}, []string{"go"}},
	{"Katherine Cox-Buday", []string{"Concurrency in Go"}, []string{"go", "concurrency"}},
	{"Martin Kleppmann", []string{"Designing Data-Intensive Applications"}, []string{"databases"}},
}

func seedDB(_ *cobra.Command, _ []string) error {
	return withPool(func(
		ctx context.Context, c *config.Config, p *postgres.Pool,
	) error {
		reg := orm.NewRegistry()
		if err := catalogrp.New().Register(ormrp.New(p, reg)); err != nil {
			return fmt.Errorf("registering catalog classes: %w", err)
		}
		uc, err := c.Usecases.Catalog.NewUseCase(txscope.New(p, reg))
		if err != nil {
			return fmt.Errorf("creating catalog use case: %w", err)
		}
		for _, s := range samples {
			a, err := uc.CreateAuthor(ctx, s.author, s.books)
			if err != nil {
				return fmt.Errorf("creating %q: %w", s.author, err)
			}
			for _, b := range a.Books {
				id := uuid.MustParse(b.ID)
				for _, tag := range s.tags {
					if _, err = uc.TagBook(ctx, id, tag); err != nil {
						return fmt.Errorf("tagging %q: %w", b.Title, err)
					}
				}
			}
			_, err = uc.Comment(
				ctx, model.CommentableAuthor, uuid.MustParse(a.ID),
				"seeded by txweb",
			)
			if err != nil {
				return fmt.Errorf("commenting on %q: %w", s.author, err)
			}
		}
		return nil
	})
}

func init() {
	dbCmd.AddCommand(seedCmd)
}
