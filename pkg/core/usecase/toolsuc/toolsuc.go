// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package toolsuc contains the tools UseCase which resolves the
// command-line utility executables (pg_dump, pg_dumpall, pg_restore,
// and psql) of a managed database server, combining the server types
// registry with the user-configured utility path preferences.
package toolsuc

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

// UseCase represents the tools use case. It holds a database
// connection pool, the preferences repository instance (to be guided
// with the DB pool), and the server types registry.
type UseCase struct {
	pool     repo.Pool
	prefsrp  repo.Prefs
	registry *srvtype.Registry
}

// New instantiates a tools use case.
func New(
	p repo.Pool, r repo.Prefs, reg *srvtype.Registry,
) (*UseCase, error) {
	if reg == nil {
		return nil, fmt.Errorf("server types registry is required")
	}
	return &UseCase{pool: p, prefsrp: r, registry: reg}, nil
}

// ResolveUtility use case resolves the absolute path of the utility
// executable which implements the op logical operation for a server
// of the stype type with the sversion numeric version.
//
// An unregistered type key yields a not-found error. An unsupported
// operation name indicates a programming error in the caller and
// yields an internal-server-level error. A configuration which
// resolves no directory for sversion yields a not-found error too,
// so REST callers observe an explicit "no usable path" condition
// instead of a silently empty result.
func (tools *UseCase) ResolveUtility(
	ctx context.Context, stype, op string, sversion int,
) (path string, err error) {
	st, ok := tools.registry.Lookup(stype)
	if !ok {
		return "", cerr.NotFound(fmt.Errorf(
			"unknown server type: %q", stype,
		))
	}
	var table []srvtype.BinPath
	err = tools.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := tools.prefsrp.Conn(c)
		table, err = q.FetchBinPaths(ctx, stype)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("fetching %q bin paths: %w", stype, err)
	}
	path, ok, err = st.UtilityPath(op, sversion, table)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cerr.NotFound(fmt.Errorf(
			"no usable %q utility path for server version %d",
			stype, sversion,
		))
	}
	return path, nil
}
