// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/txscope/pkg/adapter/config"
	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/catalogrp"
	"github.com/momeni/txscope/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog tables",
	Long: `Create the catalog tables (if they do not exist) in one
transaction. The database connection information are read from the
config file. Existing tables and their records are kept intact.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	return withPool(func(
		ctx context.Context, _ *config.Config, p *postgres.Pool,
	) error {
		rp := catalogrp.New()
		err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, rp.InitSchema)
		})
		if err != nil {
			return fmt.Errorf("initializing catalog tables: %w", err)
		}
		return nil
	})
}

func init() {
	dbCmd.AddCommand(initCmd)
}
