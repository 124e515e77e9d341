// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"errors"
)

// ErrForwardOnly is returned by the Downgrade method of revisions
// which implement no inverse transformation. Restoring an older
// schema requires restoring a backup.
var ErrForwardOnly = errors.New(
	"schema evolution is forward-only; downgrade is not implemented",
)

// Revision represents one numbered step of the forward-only database
// schema evolution. Revisions are applied in the ascending order of
// their identifiers, each within its own transaction, and the applied
// identifiers are recorded in the database, so a database reports the
// exact schema revision which it contains.
//
// The schema evolution policy is forward-only. A Revision still has a
// Downgrade method in order to make that policy explicit at the call
// site: implementations are expected to return ErrForwardOnly instead
// of pretending that a safe inverse transformation exists.
type Revision interface {
	// ID returns the unique, positive, and ascending identifier of
	// this revision.
	ID() int

	// Description returns a one-line summary of this revision for
	// logging purposes.
	Description() string

	// Upgrade applies this revision within the given transaction.
	// Any returned error aborts the transaction and the whole upgrade
	// operation; no partial state survives a failed revision.
	Upgrade(ctx context.Context, tx Tx) error

	// Downgrade reverts this revision within the given transaction,
	// if an inverse transformation is implemented.
	Downgrade(ctx context.Context, tx Tx) error
}

// RevisionFinder abstracts the bookkeeping of applied revisions, so
// the upgrade use case can find the currently applied revision and
// record newly applied ones without knowing the storage details.
type RevisionFinder interface {
	// AppliedRevision returns the largest applied revision identifier
	// using the given transaction, or zero for a pristine database
	// without the bookkeeping table.
	AppliedRevision(ctx context.Context, tx Tx) (int, error)

	// RecordRevision records the given revision identifier as applied.
	// It must be called in the same transaction which applied the
	// revision, so a failed revision leaves no record behind.
	RecordRevision(ctx context.Context, tx Tx, id int) error
}
