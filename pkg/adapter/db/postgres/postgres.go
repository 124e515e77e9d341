// Copyright (c) 2025 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the GORM framework, with its PostgreSQL
// driver, to the pkg/core/repo interfaces. The Pool, Conn, and Tx
// types wrap the gorm.DB object at its three usage levels and the
// repository packages (the usersrp and prefsrp sub-packages of this
// directory) run their queries through them.
package postgres

import (
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision"
)

// SchemaRevision is the database schema revision which this binary
// expects during its normal (non-upgrade) operations. It equals the
// latest known revision; older databases must run `pgdesk db upgrade`
// before serving requests.
var SchemaRevision = revision.Latest()
