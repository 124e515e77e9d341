// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsrp is the adapter for the preferences repository.
// Preferences are rows of the preferences table, keyed by a category
// and a name, holding a JSON-encoded value. This package exposes the
// typed operations over the "paths" category which holds one
// version-ranged utility path table per server type.
package prefsrp

import (
	"context"

	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

// Repo represents the preferences repository instance.
type Repo struct {
}

// New instantiates a preferences Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a PrefsConnQueryer interface which (with access to
// the implementation-dependent connection object) can run the
// read-only preference operations.
func (prefs *Repo) Conn(c repo.Conn) repo.PrefsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) FetchBinPaths(
	ctx context.Context, stype string,
) ([]srvtype.BinPath, error) {
	return FetchBinPaths(ctx, cq.Conn, stype)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a PrefsTxQueryer interface which (with access to the
// implementation-dependent transaction object) can run the mutating
// preference operations too.
func (prefs *Repo) Tx(tx repo.Tx) repo.PrefsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) FetchBinPaths(
	ctx context.Context, stype string,
) ([]srvtype.BinPath, error) {
	return FetchBinPaths(ctx, tq.Tx, stype)
}

func (tq txQueryer) StoreBinPaths(
	ctx context.Context, stype string, table []srvtype.BinPath,
) error {
	return StoreBinPaths(ctx, tq.Tx, stype, table)
}

func (tq txQueryer) SeedBinPaths(
	ctx context.Context, stype, label string, table []srvtype.BinPath,
) error {
	return SeedBinPaths(ctx, tq.Tx, stype, label, table)
}
