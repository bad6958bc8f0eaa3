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
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init action creates the catalog tables
and the seed action may be used to fill them with sample records.`,
}

// withPool loads the configuration file and passes the loaded settings
// and a database connection pool to f, closing the pool after f.
func withPool(
	f func(ctx context.Context, c *config.Config, p *postgres.Pool) error,
) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return f(ctx, c, p)
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
