// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package revision is the top-level facade for the forward-only
// database schema revisions. Each numbered revision lives in its own
// revN sub-package and this package aggregates them in their expected
// application order, in addition to providing the bookkeeping of the
// applied revision identifiers in the schema_revisions table.
package revision

import (
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision/rev1"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision/rev2"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// List returns all known schema revisions in their application order.
// Identifiers are ascending and contiguous; the upgrade use case
// relies on this ordering when it skips the applied prefix.
func List() []repo.Revision {
	return []repo.Revision{
		rev1.New(),
		rev2.New(),
	}
}

// Latest returns the identifier of the most recent known revision,
// which is the revision of a fully upgraded database.
func Latest() int {
	l := List()
	return l[len(l)-1].ID()
}
