// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package srvtype

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
)

// These constants name the logical operations which may be shelled
// out to a command-line utility of a managed database server.
const (
	// OpBackup dumps one database (pg_dump).
	OpBackup = "backup"
	// OpBackupServer dumps a whole cluster (pg_dumpall).
	OpBackupServer = "backup_server"
	// OpRestore restores a dump (pg_restore).
	OpRestore = "restore"
	// OpSQL opens an interactive query session (psql).
	OpSQL = "sql"
)

// DirPlaceholder may appear in a configured binary directory and
// stands for the directory containing the running application's
// entry point.
const DirPlaceholder = "$DIR"

// BinPath is one entry of the version-ranged utility path table which
// end-users configure per server type. An entry covers the servers
// with Version <= v < NextMajorVersion. At most one entry is supposed
// to be flagged as the default; it is used for server versions which
// no range covers. The JSON field names are fixed by the frontend and
// by the preference rows of the previous releases.
type BinPath struct {
	Version          int    `json:"version"`
	NextMajorVersion int    `json:"next_major_version"`
	BinaryPath       string `json:"binaryPath"`
	IsDefault        bool   `json:"isDefault"`
}

// UtilityName maps the given logical operation name to the name of
// the executable which implements it. An unsupported operation name
// indicates a programming error in the caller and is reported as an
// internal-server-level error.
func UtilityName(op string) (string, error) {
	switch op {
	case OpBackup:
		return "pg_dump", nil
	case OpBackupServer:
		return "pg_dumpall", nil
	case OpRestore:
		return "pg_restore", nil
	case OpSQL:
		return "psql", nil
	}
	return "", cerr.InternalServer(fmt.Errorf(
		"could not find the utility for the operation %q", op,
	))
}

// ResolveDir scans the given version-ranged path table and returns the
// binary directory to use for the sversion server version. The first
// entry whose range contains sversion (and has a non-empty path) wins.
// If no range matches, the path of the default-flagged entry is used.
// The second return value reports whether any directory was resolved;
// a false value is an expected condition (no usable path is configured
// yet) and callers must handle it explicitly.
func ResolveDir(table []BinPath, sversion int) (string, bool) {
	var fallback string
	for _, bp := range table {
		if bp.Version <= sversion && sversion < bp.NextMajorVersion &&
			bp.BinaryPath != "" {
			return bp.BinaryPath, true
		}
		if bp.IsDefault && fallback == "" {
			fallback = bp.BinaryPath
		}
	}
	if fallback == "" {
		return "", false
	}
	return fallback, true
}

// UtilityPath resolves the absolute path of the executable which
// implements the op logical operation for a server with the sversion
// numeric version, using the user-configured table of version-ranged
// binary directories.
//
// An unsupported op is an internal-server-level error. A table which
// resolves no directory for sversion yields ok=false without an error
// and the caller must handle the missing path explicitly. A resolved
// directory may contain the DirPlaceholder token which is substituted
// with the directory of the running executable; if that directory
// cannot be determined, the token is left intact so the problem stays
// visible in the reported path instead of failing the resolution.
// On Windows-like platforms the executable name gets the .exe suffix.
func (st *ServerType) UtilityPath(
	op string, sversion int, table []BinPath,
) (path string, ok bool, err error) {
	util, err := UtilityName(op)
	if err != nil {
		return "", false, err
	}
	dir, ok := ResolveDir(table, sversion)
	if !ok {
		return "", false, nil
	}
	if strings.Contains(dir, DirPlaceholder) {
		if exe, err := os.Executable(); err == nil {
			dir = strings.ReplaceAll(
				dir, DirPlaceholder, filepath.Dir(exe),
			)
		}
	}
	if runtime.GOOS == "windows" {
		util += ".exe"
	}
	path, err = filepath.Abs(filepath.Join(dir, util))
	if err != nil {
		return "", false, fmt.Errorf("absolutizing %q: %w", dir, err)
	}
	return path, true, nil
}
