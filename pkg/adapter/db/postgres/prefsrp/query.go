// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package prefsrp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

// PathsCategory is the preferences category which holds the per-type
// binary path entries.
const PathsCategory = "paths"

// binDirName returns the preference name of the utility path table of
// the given server type key, e.g., pg_bin_dir for the pg type.
func binDirName(stype string) string {
	return stype + "_bin_dir"
}

// FetchBinPaths loads and decodes the utility path table which is
// stored for the stype server type key. A missing preference row
// yields a nil table without an error, so callers may distinguish
// "never seeded" from an empty table.
func FetchBinPaths(
	ctx context.Context, q repo.Queryer, stype string,
) ([]srvtype.BinPath, error) {
	rs, err := q.Query(
		ctx, `SELECT value FROM preferences
			WHERE category=$1 AND name=$2`,
		PathsCategory, binDirName(stype),
	)
	if err != nil {
		return nil, fmt.Errorf("querying preferences table: %w", err)
	}
	defer rs.Close()
	var value []byte
	found := false
	for rs.Next() {
		if err := rs.Scan(&value); err != nil {
			return nil, fmt.Errorf("scanning value column: %w", err)
		}
		found = true
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("closing result set: %w", err)
	}
	if !found {
		return nil, nil
	}
	var table []srvtype.BinPath
	if err := json.Unmarshal(value, &table); err != nil {
		return nil, fmt.Errorf("deserializing json: %w", err)
	}
	return table, nil
}

// StoreBinPaths encodes and stores the utility path table for the
// stype server type key, replacing any stored table.
func StoreBinPaths(
	ctx context.Context, q repo.Queryer,
	stype string, table []srvtype.BinPath,
) error {
	b, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("serializing json: %w", err)
	}
	_, err = q.Exec(
		ctx, `INSERT INTO preferences (category, name, value)
			VALUES ($1, $2, $3::jsonb)
			ON CONFLICT (category, name)
			DO UPDATE SET value=EXCLUDED.value`,
		PathsCategory, binDirName(stype), string(b),
	)
	if err != nil {
		return fmt.Errorf("upserting preference row: %w", err)
	}
	return nil
}

// SeedBinPaths stores the utility path table and its human-readable
// label for the stype server type key, keeping any existing row
// intact, so the seeding operation at each startup never overwrites
// the user-configured paths.
func SeedBinPaths(
	ctx context.Context, q repo.Queryer,
	stype, label string, table []srvtype.BinPath,
) error {
	b, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("serializing json: %w", err)
	}
	_, err = q.Exec(
		ctx, `INSERT INTO preferences (category, name, label, value)
			VALUES ($1, $2, $3, $4::jsonb)
			ON CONFLICT (category, name) DO NOTHING`,
		PathsCategory, binDirName(stype), label, string(b),
	)
	if err != nil {
		return fmt.Errorf("seeding preference row: %w", err)
	}
	return nil
}
