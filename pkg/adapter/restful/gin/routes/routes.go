// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pgdesk/pgdesk/pkg/adapter/config"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/prefsrp"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/usersrp"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/prefsrs"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/toolsrs"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/typesrs"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/usersrs"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/prefsuc"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/toolsuc"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/usersuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like prefsuc and each repository package is named like prefsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like prefsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The binary path preference of every registered server type is also
// seeded here, before the request handlers may observe them.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	registry, err := srvtype.Defaults()
	if err != nil {
		return fmt.Errorf("registering default server types: %w", err)
	}
	prefsRepo := prefsrp.New()
	usersRepo := usersrp.New()

	prefsUseCase, err := prefsuc.New(
		p, prefsRepo, registry, c.Paths.BinDirs,
	)
	if err != nil {
		return fmt.Errorf("creating preferences use case: %w", err)
	}
	toolsUseCase, err := toolsuc.New(p, prefsRepo, registry)
	if err != nil {
		return fmt.Errorf("creating tools use case: %w", err)
	}
	usersUseCase, err := usersuc.New(
		p, usersRepo, c.Database.Hasher(),
	)
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	if err := prefsUseCase.RegisterBinPaths(ctx); err != nil {
		return fmt.Errorf("seeding binary path preferences: %w", err)
	}
	r := e.Group("/api/pgdesk/v1")
	typesrs.Register(r, registry)
	prefsrs.Register(r, prefsUseCase)
	toolsrs.Register(r, toolsUseCase)
	usersrs.Register(r, usersUseCase)
	return nil
}
