// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package revision_test

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/pgdesk/pgdesk/internal/test/dbcontainer"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/upgradeuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRevisions upgrades a pristine database to the first revision,
// fills it with accounts in the original format, and then applies the
// remaining revisions, verifying that the user table rewrite preserves
// all rows while assigning each one a fresh uniquifier.
func TestRevisions(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	r := require.New(t)
	f := revision.NewFinder()

	uc, err := upgradeuc.New(pool, f, revision.List()[:1])
	r.NoError(err, "creating upgrade use case for the first revision")
	applied, err := uc.Upgrade(ctx)
	r.NoError(err, "applying the initial schema revision")
	r.Equal(1, applied)

	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, `
			INSERT INTO "user"
				(username, email, password, active, auth_source)
			VALUES
				('alice', 'alice@example.org', 'pw-a', TRUE, 'internal'),
				('bob', NULL, NULL, FALSE, 'ldap')
		`)
		return err
	})
	r.NoError(err, "inserting accounts in the original format")

	uc, err = upgradeuc.New(pool, f, revision.List())
	r.NoError(err, "creating upgrade use case for all revisions")
	applied, err = uc.Upgrade(ctx)
	r.NoError(err, "applying the user table rewrite")
	r.Equal(1, applied, "only the second revision must be pending")

	type row struct {
		id         int64
		username   string
		email      *string
		active     bool
		authSource string
		uniquifier string
	}
	var rows []row
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rs, err := c.Query(ctx, `
			SELECT id, username, email, active, auth_source,
				fs_uniquifier
			FROM "user" ORDER BY id
		`)
		if err != nil {
			return err
		}
		defer rs.Close()
		for rs.Next() {
			var w row
			if err := rs.Scan(
				&w.id, &w.username, &w.email, &w.active,
				&w.authSource, &w.uniquifier,
			); err != nil {
				return err
			}
			rows = append(rows, w)
		}
		return rs.Err()
	})
	r.NoError(err, "reading the rewritten user table")
	r.Len(rows, 2)

	assert.Equal(t, int64(1), rows[0].id)
	assert.Equal(t, "alice", rows[0].username)
	r.NotNil(rows[0].email)
	assert.Equal(t, "alice@example.org", *rows[0].email)
	assert.True(t, rows[0].active)
	assert.Equal(t, "internal", rows[0].authSource)

	assert.Equal(t, int64(2), rows[1].id)
	assert.Equal(t, "bob", rows[1].username)
	assert.Nil(t, rows[1].email)
	assert.False(t, rows[1].active)
	assert.Equal(t, "ldap", rows[1].authSource)

	for _, w := range rows {
		r.Len(w.uniquifier, model.FsUniquifierLen)
		_, err := hex.DecodeString(w.uniquifier)
		assert.NoError(
			t, err, "uniquifier of %q must be hex", w.username,
		)
	}
	assert.NotEqual(
		t, rows[0].uniquifier, rows[1].uniquifier,
		"each row must receive its own uniquifier",
	)

	// the recreated sequence must continue after the copied rows
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, `
			INSERT INTO "user" (username, active, fs_uniquifier)
			VALUES ('carol', TRUE, $1)
		`, model.NewFsUniquifier())
		return err
	})
	r.NoError(err, "inserting a row without an explicit id")
	var carolID int64
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rs, err := c.Query(
			ctx, `SELECT id FROM "user" WHERE username = 'carol'`,
		)
		if err != nil {
			return err
		}
		defer rs.Close()
		for rs.Next() {
			if err := rs.Scan(&carolID); err != nil {
				return err
			}
		}
		return rs.Err()
	})
	r.NoError(err, "reading the generated id")
	assert.Equal(t, int64(3), carolID)

	// the rewritten table must reject duplicated uniquifiers
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(ctx, `
			INSERT INTO "user" (username, active, fs_uniquifier)
			SELECT 'dave', TRUE, fs_uniquifier
			FROM "user" WHERE username = 'carol'
		`)
		return err
	})
	r.Error(err, "duplicated uniquifier must violate the constraints")

	// a fully upgraded database needs no further action
	applied, err = uc.Upgrade(ctx)
	r.NoError(err, "re-running the upgrade")
	assert.Zero(t, applied)
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			id, err := f.AppliedRevision(ctx, tx)
			if err != nil {
				return err
			}
			assert.Equal(t, revision.Latest(), id)
			return nil
		})
	})
	r.NoError(err, "reading the applied revision")
}
