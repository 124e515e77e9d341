// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// The pgdesk binary serves the PostgreSQL administration web
// application REST APIs and manages its database schema.
package main

import "github.com/pgdesk/pgdesk/cmd/pgdesk/command"

func main() {
	command.Execute()
}
