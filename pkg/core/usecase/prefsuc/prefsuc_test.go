// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package prefsuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/prefsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (fakeTx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, nil
}

func (fakeTx) IsTx() {}

type fakeConn struct{}

func (fakeConn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (fakeConn) Query(
	context.Context, string, ...any,
) (repo.Rows, error) {
	return nil, nil
}

func (fakeConn) IsConn() {}

func (fakeConn) Tx(ctx context.Context, h repo.TxHandler) error {
	return h(ctx, fakeTx{})
}

type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, fakeConn{})
}

func (fakePool) Close() error {
	return nil
}

type prefEntry struct {
	label string
	table []srvtype.BinPath
}

// fakePrefs implements repo.Prefs over an in-memory map, so the use
// case logic may be exercised without a DBMS server.
type fakePrefs struct {
	stored map[string]prefEntry
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{stored: make(map[string]prefEntry)}
}

func (f *fakePrefs) Conn(repo.Conn) repo.PrefsConnQueryer {
	return fakePrefsQueryer{f}
}

func (f *fakePrefs) Tx(repo.Tx) repo.PrefsTxQueryer {
	return fakePrefsQueryer{f}
}

type fakePrefsQueryer struct {
	f *fakePrefs
}

func (q fakePrefsQueryer) FetchBinPaths(
	_ context.Context, stype string,
) ([]srvtype.BinPath, error) {
	e, ok := q.f.stored[stype]
	if !ok {
		return nil, nil
	}
	return e.table, nil
}

func (q fakePrefsQueryer) StoreBinPaths(
	_ context.Context, stype string, table []srvtype.BinPath,
) error {
	e := q.f.stored[stype]
	e.table = table
	q.f.stored[stype] = e
	return nil
}

func (q fakePrefsQueryer) SeedBinPaths(
	_ context.Context, stype, label string, table []srvtype.BinPath,
) error {
	if _, ok := q.f.stored[stype]; ok {
		return nil
	}
	q.f.stored[stype] = prefEntry{label: label, table: table}
	return nil
}

func newUseCase(
	t *testing.T, f *fakePrefs, dirs map[string]string,
) *prefsuc.UseCase {
	reg, err := srvtype.Defaults()
	require.NoError(t, err, "registering default server types")
	uc, err := prefsuc.New(fakePool{}, f, reg, dirs)
	require.NoError(t, err, "creating preferences use case")
	return uc
}

func TestRegisterBinPaths(t *testing.T) {
	ctx := context.Background()
	f := newFakePrefs()
	uc := newUseCase(t, f, map[string]string{
		"pg": "/usr/lib/postgresql/16/bin",
	})
	r := require.New(t)
	r.NoError(uc.RegisterBinPaths(ctx), "seeding preferences")

	pg, ok := f.stored["pg"]
	r.True(ok, "pg preference must be seeded")
	assert.Equal(t, "PostgreSQL Binary Path", pg.label)
	r.Len(pg.table, 1)
	assert.Equal(t, "/usr/lib/postgresql/16/bin", pg.table[0].BinaryPath)
	assert.True(t, pg.table[0].IsDefault)

	ppas, ok := f.stored["ppas"]
	r.True(ok, "ppas preference must be seeded")
	assert.Equal(t, "EDB Advanced Server Binary Path", ppas.label)
	assert.Empty(t, ppas.table)
}

func TestRegisterBinPathsKeepsStoredRows(t *testing.T) {
	ctx := context.Background()
	f := newFakePrefs()
	uc := newUseCase(t, f, map[string]string{"pg": "/opt/pg16/bin"})
	r := require.New(t)
	r.NoError(uc.RegisterBinPaths(ctx), "first seeding")

	// a reconfigured default must not clobber the stored table
	uc = newUseCase(t, f, map[string]string{"pg": "/opt/pg17/bin"})
	r.NoError(uc.RegisterBinPaths(ctx), "second seeding")
	r.Len(f.stored["pg"].table, 1)
	assert.Equal(t, "/opt/pg16/bin", f.stored["pg"].table[0].BinaryPath)
}

func TestFetchBinPaths(t *testing.T) {
	ctx := context.Background()
	f := newFakePrefs()
	uc := newUseCase(t, f, nil)
	r := require.New(t)

	_, err := uc.FetchBinPaths(ctx, "gpdb")
	var ce *cerr.Error
	r.ErrorAs(err, &ce, "unknown type must be reported as *cerr.Error")
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)

	table, err := uc.FetchBinPaths(ctx, "pg")
	r.NoError(err, "fetching an unseeded registered type")
	r.NotNil(table, "unseeded type must yield an empty table, not nil")
	assert.Empty(t, table)

	f.stored["pg"] = prefEntry{table: []srvtype.BinPath{
		{Version: 160000, NextMajorVersion: 170000, BinaryPath: "/x"},
	}}
	table, err = uc.FetchBinPaths(ctx, "pg")
	r.NoError(err, "fetching a stored table")
	r.Len(table, 1)
	assert.Equal(t, "/x", table[0].BinaryPath)
}

func TestUpdateBinPaths(t *testing.T) {
	ctx := context.Background()
	f := newFakePrefs()
	uc := newUseCase(t, f, nil)
	r := require.New(t)

	err := uc.UpdateBinPaths(ctx, "nosuch", nil)
	var ce *cerr.Error
	r.ErrorAs(err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)

	err = uc.UpdateBinPaths(ctx, "pg", []srvtype.BinPath{
		{BinaryPath: "/a", IsDefault: true},
		{BinaryPath: "/b", IsDefault: true},
	})
	r.ErrorAs(err, &ce, "two default entries must be rejected")
	assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)

	table := []srvtype.BinPath{
		{Version: 150000, NextMajorVersion: 160000, BinaryPath: "/p15"},
		{BinaryPath: "/p16", IsDefault: true},
	}
	r.NoError(uc.UpdateBinPaths(ctx, "pg", table), "storing valid table")
	assert.Equal(t, table, f.stored["pg"].table)
}

func TestValidateTable(t *testing.T) {
	for _, c := range []struct {
		name  string
		table []srvtype.BinPath
		ok    bool
	}{
		{"empty", nil, true},
		{"pure default", []srvtype.BinPath{
			{BinaryPath: "/d", IsDefault: true},
		}, true},
		{"ranged", []srvtype.BinPath{
			{Version: 90000, NextMajorVersion: 100000, BinaryPath: "/9"},
			{Version: 100000, NextMajorVersion: 110000, BinaryPath: "/10"},
		}, true},
		{"two defaults", []srvtype.BinPath{
			{BinaryPath: "/a", IsDefault: true},
			{BinaryPath: "/b", IsDefault: true},
		}, false},
		{"inverted range", []srvtype.BinPath{
			{Version: 100000, NextMajorVersion: 90000, BinaryPath: "/x"},
		}, false},
		{"negative version", []srvtype.BinPath{
			{Version: -1, NextMajorVersion: 90000, BinaryPath: "/x"},
		}, false},
	} {
		t.Run(c.name, func(t *testing.T) {
			err := prefsuc.ValidateTable(c.table)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewRequiresRegistry(t *testing.T) {
	_, err := prefsuc.New(fakePool{}, newFakePrefs(), nil, nil)
	assert.Error(t, err, "nil registry must be rejected")
}
