// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces using GORM and its pgx based PostgreSQL driver.
// The Conn.Tx method is the transaction primitive of this project:
// it begins a transaction, passes it to a handler, and commits or
// rolls it back based on the handler outcome.
package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/momeni/txscope/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Pool struct {
	*gorm.DB
}

// Option is a functional option for the NewPool function.
type Option func(lc *logger.Config) error

// WithSlowThreshold configures the GORM logger to report statements
// which take longer than d as slow queries.
func WithSlowThreshold(d time.Duration) Option {
	return func(lc *logger.Config) error {
		if d <= 0 {
			return fmt.Errorf("slow threshold (%v) is not positive", d)
		}
		lc.SlowThreshold = d
		return nil
	}
}

// WithLogLevel configures the GORM logger level. Supported levels are
// silent, error, warn, and info.
func WithLogLevel(level string) Option {
	return func(lc *logger.Config) error {
		switch level {
		case "silent":
			lc.LogLevel = logger.Silent
		case "error":
			lc.LogLevel = logger.Error
		case "warn":
			lc.LogLevel = logger.Warn
		case "info":
			lc.LogLevel = logger.Info
		default:
			return fmt.Errorf("unknown log level: %q", level)
		}
		return nil
	}
}

// NewPool connects to the url PostgreSQL database and tests the
// connection before returning the pool.
func NewPool(ctx context.Context, url string, opts ...Option) (*Pool, error) {
	lc := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: false,
		Colorful:                  true,
		// Set to false in order to log with replaced vars
		ParameterizedQueries: true,
	}
	for _, opt := range opts {
		if err := opt(&lc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), lc,
		),
	})
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn reserves one connection of the pool during the f call.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
