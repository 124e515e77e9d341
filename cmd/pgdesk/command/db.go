// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database schema actions",
	Long: `Database schema actions can be chosen by sub-commands.
Both for a fresh installation and for an existing installation which
lags behind the latest known schema revision, the upgrade sub-command
applies the pending revisions in their order. Revisions are
forward-only and no downgrade action exists.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
