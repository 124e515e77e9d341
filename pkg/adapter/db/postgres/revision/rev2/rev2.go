// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rev2 rewrites the user accounts table in order to introduce
// the fs_uniquifier column: an opaque per-user token which the
// authentication layer uses to identify sessions independently of the
// username. The table uniqueness scheme changes from
// (username, auth_source) to (username, auth_source, fs_uniquifier)
// and every pre-existing row is backfilled with a freshly generated
// random token.
package rev2

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/model"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// ID is the identifier of this revision.
const ID = 2

// Revision implements repo.Revision for the user table rewrite.
type Revision struct {
}

// New creates the user table rewrite revision.
func New() *Revision {
	return &Revision{}
}

// ID returns 2.
func (rev *Revision) ID() int {
	return ID
}

// Description summarizes this revision for logging purposes.
func (rev *Revision) Description() string {
	return "add fs_uniquifier to the user table"
}

// Upgrade renames the current user table to a temporary name, creates
// the replacement table with the fs_uniquifier column and the revised
// uniqueness scheme, copies every row while assigning it a fresh
// random uniquifier, and drops the temporary table. The old and new
// schemas must stay column-compatible by explicit enumeration; both
// the read and the insert list their columns by name.
//
// An empty source table keeps the copy loop a no-op while the table
// is still recreated with the new schema. Any SQL error (including a
// duplicate key on the new constraints) aborts the enclosing
// transaction; there is no partial-state cleanup.
func (rev *Revision) Upgrade(ctx context.Context, tx repo.Tx) error {
	if _, err := tx.Exec(
		ctx, `ALTER TABLE "user" RENAME TO user_old`,
	); err != nil {
		return fmt.Errorf("renaming user table: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		CREATE TABLE "user" (
			id BIGINT NOT NULL,
			username VARCHAR(256) NOT NULL,
			email VARCHAR(256),
			password VARCHAR(256),
			active BOOLEAN NOT NULL,
			confirmed_at TIMESTAMP,
			masterpass_check VARCHAR(256),
			auth_source VARCHAR(256) NOT NULL DEFAULT 'internal',
			fs_uniquifier VARCHAR(64) NOT NULL UNIQUE,
			PRIMARY KEY (id),
			UNIQUE (username, auth_source, fs_uniquifier),
			CHECK (active IN (FALSE, TRUE))
		);
	`); err != nil {
		return fmt.Errorf("creating replacement user table: %w", err)
	}
	if err := rev.backfill(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DROP TABLE user_old`); err != nil {
		return fmt.Errorf("dropping user_old table: %w", err)
	}
	return rev.recreateSequence(ctx, tx)
}

// recreateSequence restores the serial id behavior which the DROP of
// the renamed original table takes along with its owned sequence.
func (rev *Revision) recreateSequence(
	ctx context.Context, tx repo.Tx,
) error {
	if _, err := tx.Exec(
		ctx, `CREATE SEQUENCE user_id_seq OWNED BY "user".id`,
	); err != nil {
		return fmt.Errorf("creating user id sequence: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		SELECT setval(
			'user_id_seq', COALESCE((SELECT MAX(id) FROM "user"), 0) + 1,
			false
		)
	`); err != nil {
		return fmt.Errorf("advancing user id sequence: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		ALTER TABLE "user"
			ALTER COLUMN id SET DEFAULT nextval('user_id_seq')
	`); err != nil {
		return fmt.Errorf("attaching user id sequence: %w", err)
	}
	return nil
}

// backfill copies all rows of user_old into the replacement table,
// assigning each row a fresh uniquifier. Rows are buffered in memory;
// the user table of this application holds administrator accounts and
// stays small by nature.
func (rev *Revision) backfill(ctx context.Context, tx repo.Tx) error {
	rs, err := tx.Query(ctx, `
		SELECT id, username, email, password, active,
			confirmed_at, masterpass_check, auth_source
		FROM user_old
	`)
	if err != nil {
		return fmt.Errorf("reading user_old rows: %w", err)
	}
	rows := make([][]any, 0)
	for rs.Next() {
		vals, err := rs.Values()
		if err != nil {
			rs.Close()
			return fmt.Errorf("scanning user_old row: %w", err)
		}
		rows = append(rows, vals)
	}
	if err := rs.Err(); err != nil {
		rs.Close()
		return fmt.Errorf("iterating user_old rows: %w", err)
	}
	rs.Close()
	for _, vals := range rows {
		args := append(vals, model.NewFsUniquifier())
		if _, err := tx.Exec(ctx, `
			INSERT INTO "user" (
				id, username, email, password, active,
				confirmed_at, masterpass_check, auth_source,
				fs_uniquifier
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, args...); err != nil {
			return fmt.Errorf("inserting augmented row: %w", err)
		}
	}
	return nil
}

// Downgrade is not implemented; the schema evolution is forward-only.
func (rev *Revision) Downgrade(ctx context.Context, tx repo.Tx) error {
	return repo.ErrForwardOnly
}
