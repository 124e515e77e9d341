// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package toolsuc_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/toolsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func (fakeConn) Tx(context.Context, repo.TxHandler) error {
	panic("tools use case must not open a transaction")
}

type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, fakeConn{})
}

func (fakePool) Close() error {
	return nil
}

// fakePrefs implements repo.Prefs with a fixed per-type table.
type fakePrefs struct {
	tables map[string][]srvtype.BinPath
}

func (f *fakePrefs) Conn(repo.Conn) repo.PrefsConnQueryer {
	return f
}

func (f *fakePrefs) Tx(repo.Tx) repo.PrefsTxQueryer {
	panic("tools use case must not use a Tx queryer")
}

func (f *fakePrefs) FetchBinPaths(
	_ context.Context, stype string,
) ([]srvtype.BinPath, error) {
	return f.tables[stype], nil
}

func newUseCase(t *testing.T, f *fakePrefs) *toolsuc.UseCase {
	reg, err := srvtype.Defaults()
	require.NoError(t, err, "registering default server types")
	uc, err := toolsuc.New(fakePool{}, f, reg)
	require.NoError(t, err, "creating tools use case")
	return uc
}

func TestResolveUtility(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t, &fakePrefs{
		tables: map[string][]srvtype.BinPath{
			"pg": {
				{
					Version:          90000,
					NextMajorVersion: 100000,
					BinaryPath:       "/usr/lib/pg9",
				},
				{BinaryPath: "/usr/lib/pg16", IsDefault: true},
			},
		},
	})
	r := require.New(t)

	path, err := uc.ResolveUtility(ctx, "pg", srvtype.OpSQL, 95000)
	r.NoError(err, "resolving psql for an in-range version")
	assert.Equal(t, filepath.Join("/usr/lib/pg9", "psql"), path)

	path, err = uc.ResolveUtility(ctx, "pg", srvtype.OpBackup, 150002)
	r.NoError(err, "resolving pg_dump via the default entry")
	assert.Equal(t, filepath.Join("/usr/lib/pg16", "pg_dump"), path)

	path, err = uc.ResolveUtility(
		ctx, "pg", srvtype.OpBackupServer, 90600,
	)
	r.NoError(err, "resolving pg_dumpall")
	assert.Equal(t, filepath.Join("/usr/lib/pg9", "pg_dumpall"), path)
}

func TestResolveUtilityUnknownType(t *testing.T) {
	uc := newUseCase(t, &fakePrefs{})
	_, err := uc.ResolveUtility(
		context.Background(), "gpdb", srvtype.OpSQL, 90600,
	)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)
}

func TestResolveUtilityUnknownOp(t *testing.T) {
	uc := newUseCase(t, &fakePrefs{
		tables: map[string][]srvtype.BinPath{
			"pg": {{BinaryPath: "/usr/lib/pg16", IsDefault: true}},
		},
	})
	_, err := uc.ResolveUtility(
		context.Background(), "pg", "vacuum", 90600,
	)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(
		t, http.StatusInternalServerError, ce.HTTPStatusCode,
		"an unsupported operation indicates a caller bug",
	)
}

func TestResolveUtilityNoUsablePath(t *testing.T) {
	uc := newUseCase(t, &fakePrefs{
		tables: map[string][]srvtype.BinPath{
			"pg": {
				{
					Version:          90000,
					NextMajorVersion: 100000,
					BinaryPath:       "/usr/lib/pg9",
				},
			},
		},
	})
	_, err := uc.ResolveUtility(
		context.Background(), "pg", srvtype.OpRestore, 150002,
	)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)

	_, err = uc.ResolveUtility(
		context.Background(), "ppas", srvtype.OpRestore, 150002,
	)
	require.ErrorAs(t, err, &ce, "a type without any table entry")
	assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)
}
