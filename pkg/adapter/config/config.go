// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the pgdesk to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be accumulated and validated in another
// (possibly non-exported) config struct (or directly in the relevant
// end-component such as a UseCase instance).
package config

import (
	"fmt"
	"os"

	"github.com/pgdesk/pgdesk/pkg/adapter/config/vers"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration can be versioned and kept intact while
// other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Paths    Paths    // per server type default binary directories

	// Vers contains the configuration file version and the database
	// schema revision corresponding to this Config instance and its
	// Database target.
	Vers vers.Config `yaml:",inline"`
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Uninitialized items are detected as nil
// pointers and filled by their default values during the
// ValidateAndNormalize call.
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

// Paths contains the utility executables related settings.
type Paths struct {
	// BinDirs maps a server type key, like pg or ppas, to the
	// directory which holds its utility executables by default.
	// These directories seed the per-type binary path preferences at
	// startup and may be overridden by the stored preferences later.
	// Types without an entry start with an empty utility path table.
	BinDirs map[string]string `yaml:"bin-dirs,omitempty"`
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format.
// The corresponding database schema revision must also match with the
// latest known schema revision.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
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
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	nil2Zero(&c.Gin.Logger)
	nil2Zero(&c.Gin.Recovery)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	return nil
}

// SchemaRevision returns the database schema revision which its
// connection information are kept by this Config struct. There is no
// direct dependency between the configuration file version and the
// database schema revision.
func (c *Config) SchemaRevision() int {
	return c.Vers.Versions.Database
}

// nil2Zero replaces a nil *T with a pointer to the T zero value, so
// optional settings may be dereferenced unconditionally after the
// normalization phase.
func nil2Zero[T any](p **T) {
	if *p == nil {
		*p = new(T)
	}
}
