// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the common versions parsing which is required
// for loading configuration files. Two versions are tracked here,
// namely the configuration files format version and the database
// schema revision. The idea is that versions should be known before
// trying to obtain and parse the actual data, so the actual data
// format can be known and verified when loading them and although the
// format of keeping versions may change too, but it is less likely to
// change over time.
package vers

import (
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of those system components which need
// their format to be tracked. It may be embedded with inline format in
// the released config struct versions in order to indicate their
// versions and relevant items format.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file version and the database
// schema revision which are used for detecting their relevant formats.
// The configuration format follows the semantic versioning scheme,
// while the database schema is tracked as a linear forward-only
// revisions sequence and so is represented by a single number.
type Versions struct {
	Database int          `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored. The deserialized version fields (in the returned Config)
// can be used to detect the format of other settings in the data and
// complete deserialization of the remaining fields.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration settings version which
// is stored in the `vc` Config instance is not supported by the given
// major and minor version arguments. That is, stored major version
// must match with the major argument and the stored minor version must
// be at most equal with the given minor version (not newer than it).
// The database schema revision must be a positive number; whether it
// matches the actually applied revision is checked against the
// database itself, not here.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	if vc.Versions.Database <= 0 {
		return fmt.Errorf(
			"non-positive database schema revision: %d",
			vc.Versions.Database,
		)
	}
	return nil
}
