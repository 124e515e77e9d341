// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp is the adapter for the user accounts repository.
// It exposes the usersrp.Repo type in order to allow use cases to
// list, look up, and create the accounts of this web application.
package usersrp

import (
	"context"

	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"github.com/pgdesk/pgdesk/pkg/core/repo"
)

// Repo represents the user accounts repository instance.
type Repo struct {
}

// New instantiates a user accounts Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a UsersConnQueryer interface which (with access to
// the implementation-dependent connection object) can run different
// permitted operations on user accounts.
func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) List(ctx context.Context) ([]model.User, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) GetByUsername(
	ctx context.Context, username, authSource string,
) (*model.User, error) {
	return GetByUsername(ctx, cq.Conn, username, authSource)
}

func (cq connQueryer) Create(
	ctx context.Context, u *model.User,
) (*model.User, error) {
	return Create(ctx, cq.Conn, u)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a UsersTxQueryer interface which (with access to the
// implementation-dependent transaction object) can run different
// permitted operations on user accounts.
func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) List(ctx context.Context) ([]model.User, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) GetByUsername(
	ctx context.Context, username, authSource string,
) (*model.User, error) {
	return GetByUsername(ctx, tq.Tx, username, authSource)
}

func (tq txQueryer) Create(
	ctx context.Context, u *model.User,
) (*model.User, error) {
	return Create(ctx, tq.Tx, u)
}
