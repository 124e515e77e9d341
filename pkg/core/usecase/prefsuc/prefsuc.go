// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsuc contains the preferences UseCase which manages the
// per-server-type utility path preferences. Three use cases are
// supported:
//  1. Seeding the binary path preference of every registered server
//     type at the application startup,
//  2. Fetching the utility path table of one server type,
//  3. Replacing the utility path table of one server type.
package prefsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/log"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

// UseCase represents the preferences use case. It holds a database
// connection pool, the preferences repository instance (to be guided
// with the DB pool), the server types registry, and the configured
// per-type default binary directories for the seeding operation.
type UseCase struct {
	pool     repo.Pool
	prefsrp  repo.Prefs
	registry *srvtype.Registry

	defaultBinDirs map[string]string
}

// New instantiates a preferences use case. The defaultBinDirs maps a
// server type key to the built-in default binary directory which
// seeds its preference; types without an entry are seeded with an
// empty table.
func New(
	p repo.Pool, r repo.Prefs, reg *srvtype.Registry,
	defaultBinDirs map[string]string,
) (*UseCase, error) {
	if reg == nil {
		return nil, fmt.Errorf("server types registry is required")
	}
	return &UseCase{
		pool:           p,
		prefsrp:        r,
		registry:       reg,
		defaultBinDirs: defaultBinDirs,
	}, nil
}

// RegisterBinPaths use case establishes a binary path preference for
// every registered server type, seeded from the configured defaults.
// Existing rows are kept intact, so the user-configured paths survive
// restarts. The whole seeding runs in one transaction; it is executed
// by the startup routine before any request handler may run.
func (prefs *UseCase) RegisterBinPaths(ctx context.Context) error {
	return prefs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := prefs.prefsrp.Tx(tx)
			for _, st := range prefs.registry.Types() {
				table := prefs.defaultTable(st.Key)
				err := q.SeedBinPaths(ctx, st.Key, binPathLabel(st), table)
				if err != nil {
					return fmt.Errorf("seeding %q: %w", st.Key, err)
				}
				log.Debug(
					ctx, "seeded binary path preference",
					slog.String("stype", st.Key),
				)
			}
			return nil
		})
	})
}

// defaultTable builds the seed utility path table of one server type.
// A configured default directory becomes the default-flagged entry
// covering no version range; without one, the table starts empty.
func (prefs *UseCase) defaultTable(key string) []srvtype.BinPath {
	dir, ok := prefs.defaultBinDirs[key]
	if !ok || dir == "" {
		return []srvtype.BinPath{}
	}
	return []srvtype.BinPath{
		{BinaryPath: dir, IsDefault: true},
	}
}

// binPathLabel returns the human-readable label of the binary path
// preference of one server type. The two built-in types carry their
// historical labels which the frontend already presents.
func binPathLabel(st *srvtype.ServerType) string {
	switch st.Key {
	case srvtype.KeyPostgres:
		return "PostgreSQL Binary Path"
	case srvtype.KeyEDBAS:
		return "EDB Advanced Server Binary Path"
	}
	return st.Description + " Binary Path"
}

// FetchBinPaths use case returns the utility path table which is
// configured for the stype server type. An unregistered type key is
// reported as a not-found error; a registered type without a stored
// table yields an empty table.
func (prefs *UseCase) FetchBinPaths(
	ctx context.Context, stype string,
) (table []srvtype.BinPath, err error) {
	if _, ok := prefs.registry.Lookup(stype); !ok {
		return nil, cerr.NotFound(fmt.Errorf(
			"unknown server type: %q", stype,
		))
	}
	err = prefs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := prefs.prefsrp.Conn(c)
		table, err = q.FetchBinPaths(ctx, stype)
		return err
	})
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = []srvtype.BinPath{}
	}
	return table, nil
}

// UpdateBinPaths use case validates and stores the given utility path
// table for the stype server type, replacing the stored table.
func (prefs *UseCase) UpdateBinPaths(
	ctx context.Context, stype string, table []srvtype.BinPath,
) error {
	if _, ok := prefs.registry.Lookup(stype); !ok {
		return cerr.NotFound(fmt.Errorf(
			"unknown server type: %q", stype,
		))
	}
	if err := ValidateTable(table); err != nil {
		return cerr.BadRequest(err)
	}
	return prefs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := prefs.prefsrp.Tx(tx)
			return q.StoreBinPaths(ctx, stype, table)
		})
	})
}

// ValidateTable checks the utility path table invariants: every entry
// must cover a non-empty version range [version, next_major_version)
// with non-negative bounds, unless it is a pure default entry without
// any range, and at most one entry may be flagged as the default.
func ValidateTable(table []srvtype.BinPath) error {
	defaults := 0
	for i, bp := range table {
		if bp.IsDefault {
			defaults++
		}
		if bp.Version == 0 && bp.NextMajorVersion == 0 {
			continue // a pure default entry covers no range
		}
		switch {
		case bp.Version < 0:
			return fmt.Errorf("entry %d: negative version", i)
		case bp.Version >= bp.NextMajorVersion:
			return fmt.Errorf(
				"entry %d: version %d is not below next major version %d",
				i, bp.Version, bp.NextMajorVersion,
			)
		}
	}
	if defaults > 1 {
		return fmt.Errorf("%d entries are flagged default", defaults)
	}
	return nil
}
