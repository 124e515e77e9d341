// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package upgradeuc contains the schema upgrade UseCase which applies
// the pending forward-only schema revisions to the configured
// database. It is driven by the `pgdesk db upgrade` command, never by
// the request handlers, and it expects an exclusive maintenance
// window (no concurrent writers on the transformed tables).
package upgradeuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgdesk/pgdesk/pkg/core/log"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// UseCase represents the schema upgrade use case. It holds a database
// connection pool, the applied-revisions bookkeeping instance, and
// the ordered list of known revisions.
type UseCase struct {
	pool   repo.Pool
	finder repo.RevisionFinder
	revs   []repo.Revision
}

// New instantiates a schema upgrade use case. The revs slice must be
// ordered by the ascending revision identifiers; it normally comes
// from the revision.List function of the database adapter.
func New(
	p repo.Pool, f repo.RevisionFinder, revs []repo.Revision,
) (*UseCase, error) {
	last := 0
	for _, rev := range revs {
		if id := rev.ID(); id <= last {
			return nil, fmt.Errorf(
				"revision %d is out of order (after %d)", id, last,
			)
		} else {
			last = id
		}
	}
	return &UseCase{pool: p, finder: f, revs: revs}, nil
}

// Upgrade use case applies all pending revisions in their order, each
// within its own transaction together with its bookkeeping record, so
// a failure leaves the database at the last successfully applied
// revision with no partial state. It returns the number of applied
// revisions. A fully upgraded database yields zero and no error.
func (up *UseCase) Upgrade(ctx context.Context) (applied int, err error) {
	err = up.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		for _, rev := range up.revs {
			done, err := up.applyIfPending(ctx, c, rev)
			if err != nil {
				return err
			}
			if done {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// applyIfPending applies one revision in its own transaction if it is
// not recorded as applied yet. The applied revision check runs in the
// same transaction, so two concurrent upgrade runs cannot both apply
// one revision (the second one fails on the bookkeeping record).
func (up *UseCase) applyIfPending(
	ctx context.Context, c repo.Conn, rev repo.Revision,
) (done bool, err error) {
	err = c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		cur, err := up.finder.AppliedRevision(ctx, tx)
		if err != nil {
			return fmt.Errorf("finding applied revision: %w", err)
		}
		if rev.ID() <= cur {
			return nil
		}
		log.Info(
			ctx, "applying schema revision",
			slog.Int("revision", rev.ID()),
			slog.String("description", rev.Description()),
		)
		if err := rev.Upgrade(ctx, tx); err != nil {
			return fmt.Errorf("revision %d: %w", rev.ID(), err)
		}
		if err := up.finder.RecordRevision(ctx, tx, rev.ID()); err != nil {
			return fmt.Errorf("revision %d: %w", rev.ID(), err)
		}
		done = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return done, nil
}
