// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the account
// management REST APIs to be accepted and delegated to the users use
// cases respectively.
package usersrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/serdser"
	"github.com/pgdesk/pgdesk/pkg/core/model"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pgdesk/v1/users
//     in order to list all accounts,
//  2. POST request to /api/pgdesk/v1/users
//     in order to create an account.
func Register(r *gin.RouterGroup, users *usersuc.UseCase) {
	rs := &resource{users: users}
	r.GET("users", rs.ListUsers)
	r.POST("users", rs.CreateUser)
}

// serUser is the serialization form of one account. The password hash
// and master password check fields never leave the server.
type serUser struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Active      bool       `json:"active"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	AuthSource  string     `json:"authSource"`
}

func newSerUser(u *model.User) serUser {
	return serUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Active:      u.Active,
		ConfirmedAt: u.ConfirmedAt,
		AuthSource:  u.AuthSource,
	}
}

func (rs *resource) ListUsers(c *gin.Context) {
	us, err := rs.users.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	out := make([]serUser, len(us))
	for i := range us {
		out[i] = newSerUser(&us[i])
	}
	c.JSON(http.StatusOK, out)
}

type createUserReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

func (rs *resource) CreateUser(c *gin.Context) {
	req := &createUserReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	u, err := rs.users.Create(c, req.Username, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSerUser(u))
}
