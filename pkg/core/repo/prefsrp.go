// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

// PrefsConnQueryer lists the preference operations which only read
// the preferences storage and so may run on a single connection.
type PrefsConnQueryer interface {
	// FetchBinPaths loads the version-ranged utility path table which
	// is configured for the stype server type key. A registered type
	// without a stored table yields a nil table and no error.
	FetchBinPaths(ctx context.Context, stype string) ([]srvtype.BinPath, error)
}

// PrefsTxQueryer lists the preference operations which mutate the
// preferences storage and so require a transaction.
type PrefsTxQueryer interface {
	PrefsConnQueryer

	// StoreBinPaths replaces the utility path table of the stype
	// server type key.
	StoreBinPaths(ctx context.Context, stype string, table []srvtype.BinPath) error

	// SeedBinPaths stores the given table and label for the stype
	// server type key only if no table is stored for it yet, so the
	// user-configured paths survive application restarts.
	SeedBinPaths(ctx context.Context, stype, label string, table []srvtype.BinPath) error
}

// Prefs represents the preferences repository which binds the
// preference operations to a borrowed connection or transaction.
type Prefs interface {
	Conn(Conn) PrefsConnQueryer
	Tx(Tx) PrefsTxQueryer
}
