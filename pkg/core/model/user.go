// Copyright (c) 2025-2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// AuthSourceInternal is the default authentication source of a user
// account, indicating that the account is authenticated against the
// locally stored password hash (in contrast to external sources such
// as LDAP or Kerberos which may be introduced as distinct sources).
const AuthSourceInternal = "internal"

// FsUniquifierLen is the length of the FsUniquifier field contents.
// A uniquifier is a random 128-bit token which is rendered as a
// hexadecimal string, hence, 32 characters.
const FsUniquifierLen = 32

// User represents one account of the administration web application
// itself (not a role of a managed database server). The password
// and master-password check fields hold hash strings, never plaintext.
//
// Accounts are unique by the (Username, AuthSource, FsUniquifier)
// triple and the FsUniquifier alone is unique across all accounts, so
// the authentication layer can identify a session by the uniquifier
// independently of the username.
type User struct {
	ID              int64
	Username        string
	Email           string
	Password        string
	Active          bool
	ConfirmedAt     *time.Time
	MasterpassCheck string
	AuthSource      string
	FsUniquifier    string
}

// NewFsUniquifier generates a fresh random 128-bit token, rendered as
// a FsUniquifierLen-character hexadecimal string.
func NewFsUniquifier() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
