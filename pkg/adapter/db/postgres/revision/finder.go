// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package revision

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// Finder keeps track of the applied schema revisions using the
// schema_revisions table. It implements repo.RevisionFinder.
type Finder struct {
}

// NewFinder creates a revisions bookkeeping Finder instance.
func NewFinder() *Finder {
	return &Finder{}
}

// AppliedRevision returns the largest revision identifier which is
// recorded in the schema_revisions table. A pristine database, which
// does not contain that table yet, reports revision zero, so the
// first revision (which creates the table itself) is seen as pending.
// The table existence is checked beforehand because a failed query
// poisons the enclosing transaction and no further statement could
// run in it.
func (f *Finder) AppliedRevision(
	ctx context.Context, tx repo.Tx,
) (int, error) {
	ok, err := hasRevisionsTable(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("checking schema_revisions table: %w", err)
	}
	if !ok {
		return 0, nil
	}
	rs, err := tx.Query(
		ctx, `SELECT COALESCE(MAX(id), 0) FROM schema_revisions`,
	)
	if err != nil {
		return 0, fmt.Errorf("querying schema_revisions: %w", err)
	}
	defer rs.Close()
	var id int
	for rs.Next() {
		if err := rs.Scan(&id); err != nil {
			return 0, fmt.Errorf("scanning max revision id: %w", err)
		}
	}
	if err := rs.Err(); err != nil {
		return 0, fmt.Errorf("closing result set: %w", err)
	}
	return id, nil
}

// RecordRevision inserts the given revision identifier into the
// schema_revisions table, in the same transaction which applied it.
func (f *Finder) RecordRevision(
	ctx context.Context, tx repo.Tx, id int,
) error {
	_, err := tx.Exec(
		ctx, `INSERT INTO schema_revisions (id) VALUES ($1)`, id,
	)
	if err != nil {
		return fmt.Errorf("recording revision %d: %w", id, err)
	}
	return nil
}

func hasRevisionsTable(ctx context.Context, tx repo.Tx) (bool, error) {
	rs, err := tx.Query(
		ctx, `SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema()
			AND table_name = 'schema_revisions'`,
	)
	if err != nil {
		return false, err
	}
	defer rs.Close()
	found := rs.Next()
	if err := rs.Err(); err != nil {
		return false, err
	}
	return found, nil
}
