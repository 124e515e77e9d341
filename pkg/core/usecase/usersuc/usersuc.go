// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports the
// account management use cases. Currently, two use cases are
// supported:
//  1. Listing all accounts,
//  2. Creating an account.
package usersuc

import (
	"context"
	"fmt"

	"github.com/pgdesk/pgdesk/pkg/core/cerr"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
	"github.com/pgdesk/pgdesk/pkg/core/scram"
)

// UseCase represents a users use case. It holds a database connection
// pool, the user accounts repository instance (to be guided with the
// DB pool), and the password hashing settings.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  scram.Hasher

	hashIters int
}

// New instantiates a users use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, u repo.Users, h scram.Hasher, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, hasher: h}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.hashIters == 0 {
		uc.hashIters = 15000 // as recommended by RFC 7677
	}
	return uc, nil
}

// List use case returns all accounts, ordered by their identifiers.
func (users *UseCase) List(
	ctx context.Context,
) (us []model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		us, err = q.List(ctx)
		return err
	})
	if err != nil {
		us = nil
	}
	return
}

// Create use case creates a new active account with the internal
// authentication source. The plaintext password is hashed with the
// configured SCRAM mechanism before it may reach the repository and
// a fresh fs_uniquifier is assigned, so the created account satisfies
// the accounts uniqueness scheme without any caller-provided token.
func (users *UseCase) Create(
	ctx context.Context, username, email, password string,
) (u *model.User, err error) {
	if username == "" {
		return nil, cerr.BadRequest(fmt.Errorf("username is required"))
	}
	hash, err := users.hasher.Hash(password, "", users.hashIters)
	if err != nil {
		return nil, cerr.BadRequest(fmt.Errorf("hashing password: %w", err))
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := users.usersrp.Tx(tx)
			u, err = q.Create(ctx, &model.User{
				Username:     username,
				Email:        email,
				Password:     hash,
				Active:       true,
				AuthSource:   model.AuthSourceInternal,
				FsUniquifier: model.NewFsUniquifier(),
			})
			return err
		})
	})
	if err != nil {
		u = nil
	}
	return
}
