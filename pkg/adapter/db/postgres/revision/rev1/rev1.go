// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rev1 creates the initial database schema: the user accounts
// table (in its original format, without the fs_uniquifier column),
// the preferences table, and the schema_revisions bookkeeping table.
package rev1

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// ID is the identifier of this revision.
const ID = 1

// Revision implements repo.Revision for the initial schema creation.
type Revision struct {
}

// New creates the initial schema revision.
func New() *Revision {
	return &Revision{}
}

// ID returns 1.
func (rev *Revision) ID() int {
	return ID
}

// Description summarizes this revision for logging purposes.
func (rev *Revision) Description() string {
	return "initial schema: user, preferences, schema_revisions"
}

// Upgrade creates the initial tables. The user table still follows
// the original format with a (username, auth_source) uniqueness
// scheme; the fs_uniquifier column is introduced by the second
// revision.
func (rev *Revision) Upgrade(ctx context.Context, tx repo.Tx) error {
	if _, err := tx.Exec(ctx, `
		CREATE TABLE schema_revisions (
			id INTEGER NOT NULL,
			PRIMARY KEY (id)
		)
	`); err != nil {
		return fmt.Errorf("creating schema_revisions table: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		CREATE TABLE "user" (
			id BIGSERIAL NOT NULL,
			username VARCHAR(256) NOT NULL,
			email VARCHAR(256),
			password VARCHAR(256),
			active BOOLEAN NOT NULL,
			confirmed_at TIMESTAMP,
			masterpass_check VARCHAR(256),
			auth_source VARCHAR(256) NOT NULL DEFAULT 'internal',
			PRIMARY KEY (id),
			UNIQUE (username, auth_source),
			CHECK (active IN (FALSE, TRUE))
		)
	`); err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		CREATE TABLE preferences (
			category VARCHAR(128) NOT NULL,
			name VARCHAR(1024) NOT NULL,
			label VARCHAR(1024),
			value JSONB NOT NULL,
			PRIMARY KEY (category, name)
		)
	`); err != nil {
		return fmt.Errorf("creating preferences table: %w", err)
	}
	return nil
}

// Downgrade is not implemented; the schema evolution is forward-only.
func (rev *Revision) Downgrade(ctx context.Context, tx repo.Tx) error {
	return repo.ErrForwardOnly
}
