// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the txweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database management actions.
// Two actions are supported. The init action creates the catalog
// tables and the seed action fills them with sample records.
//
//	./txweb [-c /path/of/main/config.yaml] [-v]   # start web server
//	./txweb db init [-c /path/of/main/config.yaml]
//	./txweb db seed [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/txscope/pkg/adapter/config"
	"github.com/momeni/txscope/pkg/adapter/restful/gin"
	"github.com/momeni/txscope/pkg/adapter/restful/gin/routes"
	"github.com/momeni/txscope/pkg/core/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "txweb",
	Short: "A catalog web service with transaction-scoped use cases",
	Long: `A catalog web service which manages authors, books, tags,
and comments. Each use case runs in one database transaction scope,
finding the ORM classes by their names while all of their reads and
writes are bound to that transaction automatically.
It exemplifies usage of GORM and Pgx for database interactions,
the Gin Gonic web framework for the REST API implementation, and
how database repositories may be tested using temporary PostgreSQL
DBMS servers (created as podman containers).`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if data, err := c.Marshal(); err == nil {
		log.Info(ctx, "configs are loaded", slog.String("yaml", string(data)))
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c.Usecases); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and non-zero for failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath, setupLogger)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log debug messages",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level, AddSource: verbose},
	)))
}
