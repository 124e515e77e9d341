// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/adapter/config"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/upgradeuc"
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Apply the pending database schema revisions",
	Long: `Apply the pending database schema revisions in their order,
each in its own transaction, bringing a fresh or an existing database
to the latest known schema revision. An already up-to-date database is
reported as such and left unchanged.`,
	RunE: upgradeDatabase,
}

func upgradeDatabase(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if lk := revision.Latest(); c.SchemaRevision() != lk {
		return fmt.Errorf(
			"configured schema revision %d differs from the latest known revision %d",
			c.SchemaRevision(), lk,
		)
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := upgradeuc.New(p, revision.NewFinder(), revision.List())
	if err != nil {
		return fmt.Errorf("creating upgrade use case: %w", err)
	}
	applied, err := uc.Upgrade(ctx)
	if err != nil {
		return fmt.Errorf("upgrading database schema: %w", err)
	}
	if applied == 0 {
		cmd.Println("database schema is already up to date")
	} else {
		cmd.Printf("applied %d schema revision(s)\n", applied)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(upgradeCmd)
}
