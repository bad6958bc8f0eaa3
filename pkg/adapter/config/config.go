// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the txweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// are validated again by the relevant end-component such as a UseCase
// or a database Pool instance.
package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgpassfile"
	"github.com/momeni/txscope/pkg/adapter/config/settings"
	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/adapter/restful/gin"
	"github.com/momeni/txscope/pkg/core/txscope"
	"github.com/momeni/txscope/pkg/core/usecase/catalogsuc"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnv is the environment variable which overrides the
// database connection settings of a loaded configuration file.
const DatabaseURLEnv = "DATABASE_URL"

var (
	minSlowThreshold = settings.Duration(time.Millisecond)
	maxSlowThreshold = settings.Duration(time.Minute)

	// SlowThresholdBounds is the acceptable range of the database
	// slow-query threshold.
	SlowThresholdBounds = settings.Bounds[settings.Duration]{
		Min: &minSlowThreshold,
		Max: &maxSlowThreshold,
	}
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented with
// primitive fields or other structs which are defined locally, not
// models or structs which are defined in lower layers, so the
// configuration file format can be kept intact while other layers can
// change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Usecases Usecases // Configuration settings for supported use cases
}

// Database contains the database related configuration settings.
// If URL is set, it is used as is. Otherwise, the connection URL is
// computed from Host, Port, Name, and User fields while the password
// is read from the PassFile file.
type Database struct {
	URL      string `yaml:",omitempty"`
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like txweb
	User     string // role name
	PassFile string `yaml:"pass-file"` // path of the pgpass file

	Logger DBLogger // GORM logger settings
}

// DBLogger contains the GORM logger settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. A nil field keeps the default of the
// postgres package.
type DBLogger struct {
	// Level is one of silent, error, warn, or info.
	Level *string
	// SlowThreshold is the minimum duration of a statement which
	// causes it to be reported as a slow query.
	SlowThreshold *settings.Duration `yaml:"slow-threshold"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, fmt.Errorf("computing connection URL: %w", err)
	}
	opts := make([]postgres.Option, 0, 2)
	if l := d.Logger.Level; l != nil {
		opts = append(opts, postgres.WithLogLevel(*l))
	}
	if st := d.Logger.SlowThreshold; st != nil {
		opts = append(opts, postgres.WithSlowThreshold(st.Std()))
	}
	p, err := postgres.NewPool(ctx, u, opts...)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. If d.URL is not
// empty, it is returned unchanged. Otherwise, the password is looked
// up in the d.PassFile file which must follow the pgpass format,
// including its `*` wildcards and backslash escapes:
//
//	host:port:dbname:role:password
//
// Returned URL has the postgresql scheme.
func (d Database) ConnectionURL() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	pf, err := pgpassfile.ReadPassfile(d.PassFile)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	port := strconv.Itoa(d.Port)
	pass := pf.FindPassword(d.Host, port, d.Name, d.User)
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   net.JoinHostPort(d.Host, port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It may replace out of range values
// with their nearest acceptable boundary values too.
func (d *Database) ValidateAndNormalize() error {
	if d.URL == "" {
		switch {
		case d.Host == "":
			return fmt.Errorf("database host is not specified")
		case d.Port <= 0 || d.Port > 65535:
			return fmt.Errorf("invalid database port: %d", d.Port)
		case d.Name == "" || d.User == "":
			return fmt.Errorf("database name and user are required")
		case d.PassFile == "":
			return fmt.Errorf("database pass-file is not specified")
		}
	}
	if l := d.Logger.Level; l != nil {
		switch *l {
		case "silent", "error", "warn", "info":
		default:
			return fmt.Errorf("unknown database log level: %q", *l)
		}
	}
	if err := SlowThresholdBounds.Clamp(&d.Logger.SlowThreshold); err != nil {
		return fmt.Errorf("slow-threshold: %w", err)
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are filled by their
// default values using the ValidateAndNormalize method, i.e., the
// logger is disabled and the recovery is enabled by default.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Catalog Catalog // catalog use cases related settings
}

// Catalog contains the configuration settings for the catalog use
// cases.
type Catalog struct {
	// MaxBooks limits the number of books which may be created along
	// with an author in one request.
	// A nil value indicates that it is left uninitialized, so the
	// use cases layer may select a default value.
	MaxBooks *int `yaml:"max-books"`
}

// NewUseCase instantiates a new catalog use case based on the settings
// in the `c` struct.
func (c Catalog) NewUseCase(t *txscope.Transactor) (*catalogsuc.UseCase, error) {
	opts := make([]catalogsuc.Option, 0, 1)
	if c.MaxBooks != nil {
		opts = append(opts, catalogsuc.WithMaxBooks(*c.MaxBooks))
	}
	return catalogsuc.New(t, opts...)
}

// Load reads the yaml file at path and loads a Config instance from
// it. Extra items in the file will be ignored and missing items will
// take their default values. If the DATABASE_URL environment variable
// is set, it overrides the database connection settings.
// Thereafter, loaded Config will be validated and normalized in order
// to ensure that provided settings are acceptable.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	if u, found := os.LookupEnv(DatabaseURLEnv); found && u != "" {
		c.Database.URL = u
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	settings.Default(&c.Gin.Logger, false)
	settings.Default(&c.Gin.Recovery, true)
	// No need to check for c.Usecases.Catalog.MaxBooks == nil
	// because it has no default in adapters layer.
	if mb := c.Usecases.Catalog.MaxBooks; mb != nil && *mb <= 0 {
		return fmt.Errorf("max-books (%d) is not positive", *mb)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields which should be serialized. Durations are serialized manually
// using their Marshal method, so they become more human-readable.
// The database URL is omitted because it may carry a password.
type Marshalled struct {
	Database struct {
		Host     string `yaml:",omitempty"`
		Port     int    `yaml:",omitempty"`
		Name     string `yaml:",omitempty"`
		User     string `yaml:",omitempty"`
		PassFile string `yaml:"pass-file,omitempty"`
		Logger   struct {
			Level         *string `yaml:",omitempty"`
			SlowThreshold *string `yaml:"slow-threshold,omitempty"`
		}
	}
	Gin      Gin
	Usecases Usecases
}

// Marshal serializes the `c` settings as a yaml document.
func (c *Config) Marshal() ([]byte, error) {
	m := &Marshalled{Gin: c.Gin, Usecases: c.Usecases}
	d := c.Database
	m.Database.Host = d.Host
	m.Database.Port = d.Port
	m.Database.Name = d.Name
	m.Database.User = d.User
	m.Database.PassFile = d.PassFile
	m.Database.Logger.Level = d.Logger.Level
	m.Database.Logger.SlowThreshold = d.Logger.SlowThreshold.Marshal()
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal: %w", err)
	}
	return data, nil
}
